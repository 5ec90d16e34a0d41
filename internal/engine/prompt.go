package engine

// LLM prompt templates. Data only, no logic.

// analysisPrompt turns a video transcript into a structured library report.
// Args: title, channel, url, views, likes, duration, transcript.
const analysisPrompt = `You are "The Librarian," a senior AI automation engineer. Your goal is to analyze the following YouTube video transcript and extract high-density, architecturally-focused insights.

### Video Metadata
Title: %s
Channel: %s
URL: %s
Views: %d
Likes: %d
Duration: %s

### Full Transcript
%s

---

### Instructions
Generate a structured report in Markdown format. Return ONLY the Markdown content.`

// summarizePrompt condenses one library document so it fits the aggregation
// budget. Biased toward density over completeness.
// Args: document name, content.
const summarizePrompt = `Summarize the following technical report for a master synthesis.
Extract the most critical architectural patterns, consensus points, and unique insights.
Keep it concise but high-density.

DOCUMENT: %s

CONTENT:
%s`

// synthesisPrompt combines the aggregated library into a Master Strategy.
// Args: aggregated text, topic name.
const synthesisPrompt = `You are "The Strategist," a senior AI systems architect. Your goal is to synthesize multiple deep-dive technical reports into a single, cohesive "Master Strategy" document.

### Aggregated Library Data:
%s

---

### Instructions:
1. **Identify Consensus Patterns**: Where do these different experts agree?
2. **Highlight Contradictions**: Where do they disagree or provide different approaches?
3. **The "Common Truths"**: Distill the most robust, non-obvious principles.
4. **Actionable Roadmap**: Create a combined workflow or architectural pattern leveraging the best ideas.
5. **Skill Library Promotion**: Identify the top 3-5 skills that should be prioritized for the global "agent-skills-library".

Generate a structured Markdown report titled: "Master Strategy: %s".
Return ONLY the Markdown content.`

// evaluatePrompt decides whether a candidate skill earns a place in the
// global skills library. Args: skill name, research context.
const evaluatePrompt = `You are an expert AI orchestrator. Evaluate if the following potential "Skill" is worth adding to a permanent Global Skills Library.

Skill Name: %s

Context from research:
%s

Evaluation Criteria:
1. Is this a repeating pattern in high-value work?
2. Does it solve a known friction point in current projects?
3. Is it "production-ready" or just a vague idea?
4. Does it provide a "better way" than current habits?

Respond with:
1. DECISION: [PROMOTE] or [REJECT]
2. REASONING: (A few sentences explaining why, referencing the criteria above)
3. RECOMMENDED_TYPE: (e.g., Development, Analysis, Security)
4. RECOMMENDED_COMPLEXITY: (Low, Medium, High)`

// generatePrompt produces the three production files for a promoted skill.
// Args: skill name, evaluation text, research context.
const generatePrompt = `Generate three files for a new skill called "%s".
Use the following evaluation and research context to populate the details.

Evaluation:
%s

Research Context:
%s

FILES TO GENERATE:

1. SKILL.md (Claude Adapter)
Follow this format:
# Claude Skill: [Name]
> Adapter for: playbooks/[slug]/
> Version: 1.0.0
## Skill Overview
... (What it does, when to activate, activation prompt)

2. RULE.md (Cursor Rule)
Follow this format:
# Cursor Rule: [Name]
## Quick Reference
... (Playbook location, how to use in Cursor, progress updates)

3. README.md (Canonical Playbook)
Follow this format:
# [Name] Playbook
## What This Skill Does
## The Process (Step by step)
## Best Practices

Output the result as a raw JSON object with keys "SKILL_MD", "RULE_MD", and "README_MD".
Do NOT use markdown code blocks. Just output the raw JSON string starting with { and ending with }.
Ensure all three fields contain the full content of the files as described.`

// healPrompt converts a broken script plus its error log into a fixed version.
// Args: file path, original code, error log.
const healPrompt = `You are a "Skill Healer," a senior software engineer specialized in self-correcting AI agents.
Your task is to analyze a piece of code and a corresponding error log, then provide a fixed version of the code.

### Original Code (%s):
` + "```" + `
%s
` + "```" + `

### Error Log:
` + "```text" + `
%s
` + "```" + `

### Instructions:
1. Identify the root cause of the error.
2. Provide the ENTIRE corrected code block.
3. Ensure the fix is deterministic and robust.
4. Do not include any explanations outside of the code block.

Return ONLY the corrected code.`
