// Package libserver wires the knowledge-library pipeline into MCP tools.
package libserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all library tools on the given MCP server:
// analyze_video, get_transcript, synthesize_strategy, promote_skill,
// skill_history, heal_skill, fetch_page, queue_add, queue_list.
func RegisterTools(server *mcp.Server) {
	registerAnalyzeVideo(server)
	registerGetTranscript(server)
	registerSynthesizeStrategy(server)
	registerPromoteSkill(server)
	registerSkillHistory(server)
	registerHealSkill(server)
	registerFetchPage(server)
	registerQueueAdd(server)
	registerQueueList(server)
}
