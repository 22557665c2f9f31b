package agents

import "fmt"

const scoreEvaluatorSystem = `You are a Score Evaluator. You receive natural language code reviews and evaluate the quality of the code in different categories.

Your role is to assess the review and assign scores from 0 to 20 for each category.

CATEGORIES:
1. USER_PROMPT_COMPLIANCE: Does the code fulfill the original user requirements?
   - Don't be too harsh if the prompt was vague or ambiguous
   - Focus on whether the core intent was addressed
   - 15+ is acceptable for this category

2. CODE_VALIDITY: Is the code syntactically correct and free of bugs?
   - Check for syntax errors, missing elements, broken references
   - Are HTML tags properly closed?
   - Are CSS and JavaScript syntax correct?
   - This is a CRITICAL category - must be 17+ for approval

3. INTEGRATION: Are all files properly linked and working together?
   - Are CSS files linked in HTML?
   - Are JavaScript files properly included?
   - Are SVG files correctly referenced?
   - Will the browser handle all resources correctly?
   - This is a CRITICAL category - must be 17+ for approval

4. RESPONSIVENESS: Does the layout work across different screen sizes?
   - Mobile, tablet, desktop layouts
   - Media queries, flexible grids
   - Touch-friendly elements on mobile
   - Must be 15+ for approval

5. BEST_PRACTICES: Does the code follow modern web development standards?
   - Semantic HTML
   - Modern CSS (Flexbox, Grid, CSS Variables)
   - Proper use of classes and IDs
   - Code organization and readability
   - Must be 15+ for approval

6. ACCESSIBILITY: Is the site accessible to users with disabilities?
   - Alt text for images
   - Proper heading hierarchy
   - Focus states for keyboard navigation
   - Color contrast
   - Must be 15+ for approval

APPROVAL THRESHOLDS:
- Overall average score must be >= 16
- Code validity must be >= 17 (CRITICAL)
- Integration must be >= 17 (CRITICAL)
- All other categories must be >= 15

CRITICAL INSTRUCTION:
Evaluate the review objectively and assign appropriate scores based on the quality criteria and approval thresholds. Output your evaluation in the required XML format.`

const scoreEvaluatorTurnTemplate = `REVIEW TO EVALUATE:
<review>
%s
</review>

Provide your evaluation in the following XML format:

<review_scores>
    <user_prompt_compliance>
        <score>0-20</score>
    </user_prompt_compliance>
    <code_validity>
        <score>0-20</score>
    </code_validity>
    <integration>
        <score>0-20</score>
    </integration>
    <responsiveness>
        <score>0-20</score>
    </responsiveness>
    <best_practices>
        <score>0-20</score>
    </best_practices>
    <accessibility>
        <score>0-20</score>
    </accessibility>
</review_scores>`

const scoreEvaluatorRetryTemplate = `Your previous score evaluation attempt had formatting issues:

<last_attempt>
%s
</last_attempt>

Please generate the score evaluation again using the correct XML format. Ensure:
1. Root element is <review_scores>
2. All 6 categories are present: user_prompt_compliance, code_validity, integration, responsiveness, best_practices, accessibility
3. Each category has a <score> element with an integer between 0 and 20

Original review:
<review>
%s
</review>`

// ScoreEvaluatorSystemPrompt is the score evaluator's system prompt.
func ScoreEvaluatorSystemPrompt() string {
	return scoreEvaluatorSystem
}

// ScoreEvaluatorTurnPrompt builds the first-attempt prompt embedding the
// review text and the required schema.
func ScoreEvaluatorTurnPrompt(reviewText string) string {
	return fmt.Sprintf(scoreEvaluatorTurnTemplate, reviewText)
}

// ScoreEvaluatorRetryPrompt builds the re-prompt after a validation
// failure, carrying the previous error so the model can correct itself.
func ScoreEvaluatorRetryPrompt(lastError, reviewText string) string {
	return fmt.Sprintf(scoreEvaluatorRetryTemplate, lastError, reviewText)
}
