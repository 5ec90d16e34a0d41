package engine

// --- Video types ---

// VideoMeta is the metadata for one YouTube video, assembled by the sources
// package from the watch page player response.
type VideoMeta struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	UploadDate  string   `json:"upload_date,omitempty"` // YYYY-MM-DD
	Duration    string   `json:"duration,omitempty"`    // H:MM:SS
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
	Tags        []string `json:"tags,omitempty"`
}

// --- Librarian tool types ---

// AnalyzeVideoInput is the input for analyze_video.
type AnalyzeVideoInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch or youtu.be)"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code (default: en)"`
}

// AnalyzeVideoOutput is the structured output for analyze_video.
type AnalyzeVideoOutput struct {
	Title           string   `json:"title"`
	Channel         string   `json:"channel"`
	File            string   `json:"file"`
	Topics          []string `json:"topics,omitempty"`
	TranscriptChars int      `json:"transcript_chars"`
}

// --- Strategist tool types ---

// SynthesizeInput is the input for synthesize_strategy.
type SynthesizeInput struct {
	Topic    string `json:"topic,omitempty" jsonschema:"Topic name for the synthesis report (default: AI Orchestration & Automation)"`
	Category string `json:"category,omitempty" jsonschema:"Optional category filter matched against topic/<category> tags and filenames (e.g. ai, diet)"`
	Output   string `json:"output,omitempty" jsonschema:"Custom output filename inside the synthesis directory"`
}

// SynthesizeOutput is the structured output for synthesize_strategy.
type SynthesizeOutput struct {
	File            string `json:"file"`
	Documents       int    `json:"documents"`
	EstimatedTokens int    `json:"estimated_tokens"`
	Cached          bool   `json:"cached,omitempty"`
}

// --- Bridge tool types ---

// PromoteSkillInput is the input for promote_skill.
type PromoteSkillInput struct {
	Source string `json:"source" jsonschema:"Path to the source report or synthesis file"`
	Skill  string `json:"skill" jsonschema:"Name of the skill to extract and evaluate"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"Evaluate only, write no files"`
}

// PromoteSkillOutput is the structured output for promote_skill.
type PromoteSkillOutput struct {
	Decision   string   `json:"decision"` // PROMOTE, REJECT, UNKNOWN
	Evaluation string   `json:"evaluation"`
	Files      []string `json:"files,omitempty"`
}

// --- Healer tool types ---

// HealSkillInput is the input for heal_skill.
type HealSkillInput struct {
	Skill string `json:"skill" jsonschema:"Path to the script or skill file to fix"`
	Error string `json:"error" jsonschema:"Error message text, or path to an error log file"`
}

// HealSkillOutput is the structured output for heal_skill.
type HealSkillOutput struct {
	File    string `json:"file"`
	Backup  string `json:"backup"`
	Message string `json:"message"`
}

// --- Queue tool types ---

// QueueAddInput is the input for queue_add.
type QueueAddInput struct {
	URL   string `json:"url" jsonschema:"YouTube video URL to queue for analysis"`
	Title string `json:"title,omitempty" jsonschema:"Optional title hint"`
	Notes string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

// QueueListInput is the input for queue_list.
type QueueListInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter: queued, analyzed, failed"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max entries (default: 50)"`
}

// --- Fetch tool types ---

// FetchPageInput is the input for fetch_page.
type FetchPageInput struct {
	URL string `json:"url" jsonschema:"Web page URL to fetch and convert to markdown"`
}

// FetchPageOutput is the structured output for fetch_page.
type FetchPageOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
