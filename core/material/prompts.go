package material

import (
	"fmt"
	"strings"
)

// The three prompt templates, parameterized by topic and difficulty.
// Difficulty is lower-cased into the running text.

func PreClassPrompt(topic string, level Difficulty) string {
	return fmt.Sprintf(`Create a comprehensive pre-class document for %s level undergraduate students preparing for placement interviews.
Topic: %s

Document should include:
1. Brief overview (1 paragraph)
2. 5 key concepts with concise explanations
3. Prerequisite knowledge required
4. Real-world applications (2-3 examples)
5. Recommended pre-reading (3-5 bullet points)
6. Common interview questions related to the topic

Format as a structured document with clear headings. Use academic but accessible language.`,
		strings.ToLower(string(level)), topic)
}

func InClassPrompt(topic string, level Difficulty) string {
	return fmt.Sprintf(`Create a detailed 1-hour lesson plan for teaching %s to %s level students at IIT Bombay.

Structure:
1. Learning objectives (3-5 bullet points)
2. Time-allocated session breakdown:
   - Introduction (5 minutes)
   - Core concept explanation (15 minutes)
   - Practical example walkthrough (20 minutes)
   - Student practice activity (15 minutes)
   - Q&A and summary (5 minutes)
3. Teaching tips and common pitfalls
4. Required materials/resources
5. Engagement strategies for each section
6. Whiteboard diagrams/examples to use

Include specific IIT Bombay context where relevant.`,
		topic, strings.ToLower(string(level)))
}

func PostClassPrompt(topic string, level Difficulty) string {
	return fmt.Sprintf(`Create a post-class document for %s at %s level including:

1. Key takeaways summary (1 paragraph)
2. 8-question quiz (4 MCQ, 2 true/false, 2 short answer) with solutions
3. Additional practice problems (3-5) with difficulty ratings
4. Recommended next steps/resources for further learning
5. Common mistakes to avoid in interviews

Format with clear section headings. Include IIT-specific examples where appropriate.`,
		topic, strings.ToLower(string(level)))
}
