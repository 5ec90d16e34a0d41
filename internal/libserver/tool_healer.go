package libserver

import (
	"context"
	"errors"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerHealSkill(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "heal_skill",
		Description: "Send a broken script plus its error log to the model and overwrite the file with the corrected version. Keeps the original as <file>.bak. The error argument can be the error text itself or a path to a log file.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.HealSkillInput) (*mcp.CallToolResult, *engine.HealSkillOutput, error) {
		if input.Skill == "" || input.Error == "" {
			return nil, nil, errors.New("skill and error are required")
		}
		out, err := library.Heal(ctx, input.Skill, input.Error)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
