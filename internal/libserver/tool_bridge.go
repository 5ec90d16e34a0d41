package libserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPromoteSkill(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "promote_skill",
		Description: "Bridge a skill from a research report or synthesis document into the global skills library. Evaluates utility first; only a PROMOTE decision writes the SKILL.md, RULE.md, and README.md production files. Use dry_run to see the evaluation without writing anything.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.PromoteSkillInput) (*mcp.CallToolResult, *engine.PromoteSkillOutput, error) {
		if input.Source == "" || input.Skill == "" {
			return nil, nil, errors.New("source and skill are required")
		}

		out, err := library.PromoteSkill(ctx, input)
		if err != nil {
			return nil, nil, err
		}

		if db := library.GetSkillDB(); db != nil && !input.DryRun {
			if err := db.RecordPromotion(ctx, input.Skill, input.Source, out.Decision, out.Evaluation, out.Files); err != nil {
				slog.Warn("promote_skill: history record failed", slog.Any("error", err))
			}
		}
		return nil, out, nil
	})
}

// SkillHistoryInput is the input for skill_history.
type SkillHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max entries (default: 20)"`
}

// SkillHistoryOutput is the structured output for skill_history.
type SkillHistoryOutput struct {
	Promotions []library.PromotionRecord `json:"promotions"`
}

func registerSkillHistory(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_history",
		Description: "List recent skill promotion decisions recorded in Postgres, newest first. Requires DATABASE_URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SkillHistoryInput) (*mcp.CallToolResult, SkillHistoryOutput, error) {
		db := library.GetSkillDB()
		if db == nil {
			return nil, SkillHistoryOutput{}, errors.New("skill history requires DATABASE_URL")
		}
		records, err := db.ListPromotions(ctx, input.Limit)
		if err != nil {
			return nil, SkillHistoryOutput{}, err
		}
		if records == nil {
			records = []library.PromotionRecord{}
		}
		return nil, SkillHistoryOutput{Promotions: records}, nil
	})
}
