package services

import (
	"fmt"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

const defaultBrandDescription = "A professional brand"

func brandOrDefault(description string) string {
	if strings.TrimSpace(description) == "" {
		return defaultBrandDescription
	}
	return description
}

func outlinePrompt(topic *entities.Topic, brand string) string {
	return fmt.Sprintf(`You are an expert SEO content strategist. Create a detailed, professional article outline for the topic: %q.
Context about the brand writing this: %q.
Target core entity/keyword: %q.

Include a compelling H1 title at the top. Do not include conversational filler, just the outline.
Format the response strictly as valid HTML using ONLY these tags: <h1>, <h2>, <h3>, <p>, <ul>, <li>, <strong>.
Do NOT include markdown code blocks. Return only the raw HTML.`,
		topic.Title, brandOrDefault(brand), topic.CoreEntity)
}

func entitiesPrompt(topic *entities.Topic) string {
	return fmt.Sprintf(`You are an Answer Engine Optimization (AEO) expert.
The user is writing an article titled: %q.
The primary core entity/keyword is: %q.

Generate a list of 6 to 8 highly relevant secondary entities, semantic keywords or concepts that MUST be included in this article for a large language model to consider it authoritative.
Keep the entities short (1 to 3 words max).

Return ONLY a JSON object with this exact structure:
{"entities": ["keyword 1", "keyword 2", "keyword 3"]}`,
		topic.Title, topic.CoreEntity)
}

func sectionPrompt(topic *entities.Topic, keywords []string) string {
	return fmt.Sprintf(`You are an expert AEO content writer.
The article is about: %q.
Write a highly professional, engaging section for this article.

CRITICAL INSTRUCTION: You MUST naturally include these EXACT keyword phrases in your response: %s.
Do NOT use synonyms. Use the exact phrases provided and wrap each of them in <strong> tags.
Format the response strictly as valid HTML using ONLY: <h2>, <h3>, <p>, <ul>, <li>, <strong>.
Do NOT include markdown code blocks. Return only the raw HTML.`,
		topic.Title, strings.Join(keywords, ", "))
}

func maximizePrompt(topic *entities.Topic, draft string, missing []string) string {
	return fmt.Sprintf(`You are a master SEO editor.
Here is a working draft for the article %q:

%s

Your task is to maximize keyword coverage.
CRITICAL INSTRUCTION: You MUST seamlessly and naturally weave these EXACT missing keywords into the draft: %s.
Do NOT use synonyms. Use the exact phrases provided and wrap the newly added keywords in <strong> tags.
Do NOT delete the author's existing points or change their voice. Enhance and expand the draft to include the missing entities.
Format the response strictly as valid HTML using ONLY: <h1>, <h2>, <h3>, <p>, <ul>, <li>, <strong>.
Do NOT include markdown code blocks. Return only the full rewritten HTML.`,
		topic.Title, draft, strings.Join(missing, ", "))
}

func editPrompt(topic *entities.Topic, draft, instruction string) string {
	if strings.TrimSpace(draft) == "" {
		draft = "(This draft is currently empty. Write it from scratch based on the title and instruction.)"
	}
	return fmt.Sprintf(`You are an expert SEO copywriter and editor.
Below is the current draft of an article titled %q.

CURRENT DRAFT:
"""
%s
"""

THE USER INSTRUCTION:
%q

Rewrite or update the draft to fulfill the user's instruction.
Format the response strictly as valid HTML using ONLY: <h1>, <h2>, <h3>, <p>, <ul>, <li>, <strong>.
Return only the content, without introductory or concluding remarks and without markdown code blocks.`,
		topic.Title, draft, instruction)
}

func brainstormPrompt(keyword string) string {
	return fmt.Sprintf(`You are an expert SEO strategist. The user wants to build authority around the keyword/topic: %q.
Generate exactly %d highly relevant, semantic SEO article topics that will help them rank.

Respond with a JSON array of objects. Each object must have exactly these three keys:
- "topicName": the catchy, SEO-optimized title of the article
- "coreEntity": a 1-2 word broad category for the article, e.g. "Email Marketing" or "Growth"
- "priority": exactly "High", "Medium" or "Low"`,
		keyword, brainstormCount)
}

func suggestionsPrompt(user *entities.User) string {
	description := user.BrandDescription
	if strings.TrimSpace(description) == "" {
		description = "No description provided"
	}
	return fmt.Sprintf(`You are an SEO content strategist. Based on the following brand information, suggest exactly %d relevant and valuable content topics that would help this brand improve its SEO and answer engine optimization (AEO).

Brand domain: %s
Description: %s

Each topic should be specific, actionable, answer-focused and relevant to the brand.
Return ONLY a JSON array of objects with this exact structure:
[{"topic": "Topic title here", "reason": "Brief explanation of why this topic is valuable"}]`,
		suggestionCount, user.Website, description)
}

func gapPrompt(userSite, competitorSite string) string {
	return fmt.Sprintf(`You are a competitive SEO and AEO analyst. Compare the two websites below using only the summaries provided.

MY WEBSITE:
%s

COMPETITOR WEBSITE:
%s

Return ONLY a JSON object with this exact structure:
{
  "scores": {"userScore": <integer 0-100>, "compScore": <integer 0-100>, "reasoning": "<one sentence>"},
  "featureComparison": [
    {"feature": "<feature name>", "userStatus": "Yes|No", "compStatus": "Yes|No"}
  ],
  "myAdvantages": ["<advantage>", "<advantage>", "<advantage>"],
  "competitorAdvantages": ["<advantage>", "<advantage>", "<advantage>"],
  "actionPlan": ["<step>", "<step>", "<step>"]
}
The featureComparison array must contain exactly %d rows.`,
		userSite, competitorSite, entities.GapFeatureRows)
}

func aeoScanPrompt(text string) string {
	return fmt.Sprintf(`You are a STRICT, BRUTALLY HONEST Answer Engine Optimization (AEO) auditor.
Analyze the following website text. Be harsh. Most websites score poorly because they use marketing fluff instead of clear, LLM-readable facts.

Grade the text from 0 to 100 based strictly on:
1. Entity clarity: are the brand, product and target audience instantly obvious without human inference?
2. Context depth: is there enough concrete factual data for an AI to confidently cite this website as a source?
3. Fluff vs. fact: deduct heavy points for vague buzzwords.

Website text:
%q

Return ONLY a valid JSON object with this exact structure:
{"score": <integer 0-100>, "status": "<Critical | Needs Work | Fair | Good | Excellent>", "reasoning": "<one critical sentence>"}`,
		text)
}
