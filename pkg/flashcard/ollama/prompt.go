package ollama

import (
	"fmt"

	"github.com/quizwire/flashpipe/pkg/flashcard"
)

const promptTemplate = `You are an expert at creating educational flashcards from business news articles across various industries and sectors.

Read the FULL ARTICLE BODY below and create ONE comprehensive flashcard.

GUIDELINES:
1. **Question**: Ask about the most important fact, event, or development
   - Be specific and reference concrete details from the article
   - Focus on "what", "who", "when", "where", or "why" questions
   - Avoid yes/no questions

2. **Answer**: Provide a detailed, factual answer (2-4 sentences)
   - Include specific names, dates, numbers, and statistics from the article
   - Be precise and comprehensive

3. **Context**: Explain the broader significance (2-4 sentences)
   - Why does this matter to the industry/sector?
   - What are the business implications or future impact?
   - Connect to larger market trends, competitive landscape, or regulatory changes

4. **Summary**: Create a concise summary of the entire article (3-5 sentences)
   - Cover the main business developments and key points
   - Include important financial figures, statistics, or quotes from executives
   - Maintain chronological or logical flow

5. **Entity**: The main organization, company, or institution
   - Use the official full name
   - If multiple entities, choose the primary subject of the article

6. **Person of Contact**: The key person mentioned
   - Use full name and title/role (CEO, CFO, Managing Director, etc.)
   - Choose the most prominently featured business leader or executive
   - Leave empty if no specific person is central to the story

ARTICLE DETAILS:
Title: %s
Source: %s
Date: %s

FULL ARTICLE BODY:
%s

Read the entire article carefully before generating the flashcard.

Respond with a single JSON object containing exactly these string keys:
"summary", "question", "answer", "context",
"the_entity_mainly_concerned_with_the_news_article", "person_of_contact".

OUTPUT (valid JSON only, no other text):`

func buildPrompt(p flashcard.Payload) string {
	return fmt.Sprintf(promptTemplate, p.Title, p.Source, p.PublishedAt, p.Body)
}
