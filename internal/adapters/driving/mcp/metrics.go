package mcp

import "github.com/prometheus/client_golang/prometheus"

var toolCalls = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "partfinder_mcp_tool_calls_total",
		Help: "MCP tool invocations by tool and outcome",
	},
	[]string{"tool", "outcome"},
)

func init() {
	prometheus.MustRegister(toolCalls)
}

// observe records one tool call.
func observe(tool string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	toolCalls.WithLabelValues(tool, outcome).Inc()
}
