package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// Bridge: promote a skill discovered during research into the permanent
// global skills library. A promotion extracts context around the skill in
// its source report, has the model evaluate whether it is worth keeping,
// then generates the three production files (Claude adapter, Cursor rule,
// canonical playbook).

const skillContextLines = 50

// Promotion decisions parsed from an evaluation.
const (
	DecisionPromote = "PROMOTE"
	DecisionReject  = "REJECT"
	DecisionUnknown = "UNKNOWN"
)

var decisionRE = regexp.MustCompile(`(?im)^DECISION:\s*\[(PROMOTE|REJECT)\]`)

// ParseDecision extracts the promotion verdict from an evaluation. Anything
// that does not state a decision on its own line is UNKNOWN, and UNKNOWN
// blocks file writes.
func ParseDecision(evaluation string) string {
	m := decisionRE.FindStringSubmatch(evaluation)
	if m == nil {
		return DecisionUnknown
	}
	return strings.ToUpper(m[1])
}

// ExtractSkillContext reads the source report and returns the chunk
// surrounding the first mention of the skill name. If the name never
// appears, the whole document is the context.
func ExtractSkillContext(sourcePath, skillName string) (string, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("bridge: read source: %w", err)
	}
	content := string(raw)

	lower := strings.ToLower(skillName)
	var chunk []string
	found := false
	for _, line := range strings.Split(content, "\n") {
		if !found && strings.Contains(strings.ToLower(line), lower) {
			found = true
		}
		if found {
			chunk = append(chunk, line)
			if len(chunk) > skillContextLines {
				break
			}
		}
	}
	if len(chunk) == 0 {
		return content, nil
	}
	return strings.Join(chunk, "\n"), nil
}

// skillFiles is the generated content for one promoted skill.
type skillFiles struct {
	SkillMD  string `json:"SKILL_MD"`
	RuleMD   string `json:"RULE_MD"`
	ReadmeMD string `json:"README_MD"`
}

func (f skillFiles) validate() error {
	var missing []string
	if f.SkillMD == "" {
		missing = append(missing, "SKILL_MD")
	}
	if f.RuleMD == "" {
		missing = append(missing, "RULE_MD")
	}
	if f.ReadmeMD == "" {
		missing = append(missing, "README_MD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("bridge: generated files missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// parseSkillFiles pulls the JSON object out of a model response and decodes
// it, tolerating reasoning text around the braces.
func parseSkillFiles(response string) (skillFiles, error) {
	var files skillFiles
	jsonStr := engine.ExtractJSONObject(response)
	if jsonStr == "" {
		return files, fmt.Errorf("bridge: no JSON object in response: %s", engine.Truncate(response, 200))
	}
	if err := json.Unmarshal([]byte(jsonStr), &files); err != nil {
		return files, fmt.Errorf("bridge: decode generated files: %w", err)
	}
	return files, files.validate()
}

// PromoteSkill runs the full bridge pipeline for one skill. In dry-run mode
// it stops after the evaluation. Returned Files lists everything written.
func PromoteSkill(ctx context.Context, in engine.PromoteSkillInput) (*engine.PromoteSkillOutput, error) {
	research, err := ExtractSkillContext(in.Source, in.Skill)
	if err != nil {
		return nil, err
	}

	evaluation, err := engine.EvaluateSkill(ctx, in.Skill, research)
	if err != nil {
		return nil, fmt.Errorf("bridge: evaluate %q: %w", in.Skill, err)
	}

	out := &engine.PromoteSkillOutput{
		Decision:   ParseDecision(evaluation),
		Evaluation: evaluation,
	}
	if in.DryRun || out.Decision != DecisionPromote {
		return out, nil
	}

	response, err := engine.GenerateSkillFiles(ctx, in.Skill, evaluation, research)
	if err != nil {
		return nil, fmt.Errorf("bridge: generate %q: %w", in.Skill, err)
	}
	files, err := parseSkillFiles(response)
	if err != nil {
		return nil, err
	}

	written, err := writeSkillFiles(engine.Cfg.SkillsDir, in.Skill, files)
	if err != nil {
		return nil, err
	}
	out.Files = written
	return out, nil
}

// writeSkillFiles lays the three generated files out under the global skills
// library root, one directory per consumer.
func writeSkillFiles(root, skillName string, files skillFiles) ([]string, error) {
	slug := strings.ReplaceAll(strings.ToLower(skillName), " ", "-")

	targets := []struct {
		dir, name, content string
	}{
		{filepath.Join(root, "claude-skills", slug), "SKILL.md", files.SkillMD},
		{filepath.Join(root, "cursor-rules", slug), "RULE.md", files.RuleMD},
		{filepath.Join(root, "playbooks", slug), "README.md", files.ReadmeMD},
	}

	written := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := os.MkdirAll(t.dir, 0o755); err != nil {
			return nil, fmt.Errorf("bridge: mkdir %s: %w", t.dir, err)
		}
		path := filepath.Join(t.dir, t.name)
		if err := atomicWrite(path, t.content); err != nil {
			return nil, fmt.Errorf("bridge: write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
