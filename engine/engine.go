package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/llm"
)

const (
	// DefaultMaxTurns bounds the number of model round trips per request.
	DefaultMaxTurns = 15
	// DefaultDeadline bounds the wall-clock time per request.
	DefaultDeadline = 60 * time.Second
	// DefaultMaxTokens is the per-completion output token limit.
	DefaultMaxTokens = 4096
)

// runState tracks where a request is in the agent loop.
type runState int

const (
	stateThinking runState = iota
	stateActing
	stateObserving
	stateDone
	stateFailed
)

func (s runState) String() string {
	switch s {
	case stateThinking:
		return "thinking"
	case stateActing:
		return "acting"
	case stateObserving:
		return "observing"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Engine runs the model-tool loop against a provider and a tool registry.
type Engine struct {
	provider llm.Provider
	registry *ToolRegistry
}

// New creates an engine backed by the given provider.
func New(provider llm.Provider, registry *ToolRegistry) *Engine {
	if registry == nil {
		registry = NewToolRegistry()
	}
	return &Engine{provider: provider, registry: registry}
}

// Registry exposes the engine's tool registry for registration.
func (e *Engine) Registry() *ToolRegistry {
	return e.registry
}

// Input describes one user request to the engine.
type Input struct {
	UserMessage  string
	Context      *core.Context
	History      []core.Message
	SystemPrompt string
	Model        string
	MaxTokens    int64
	MaxTurns     int
	Deadline     time.Duration

	// StreamCallback, when set, receives assistant text as it is produced.
	// done is true on the final call of a run.
	StreamCallback func(chunk string, done bool)
}

// Step records one tool invocation made during a run.
type Step struct {
	Tool     string
	Input    string
	Success  bool
	Duration time.Duration
}

// Output is the result of a run.
type Output struct {
	Text       string
	TokensUsed core.TokenUsage
	Steps      []Step
	Turns      int
}

// Run executes the agent loop until the model stops calling tools, the turn
// budget runs out, or the deadline passes.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("engine has no provider configured")
	}

	maxTurns := input.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	deadline := input.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	model := input.Model
	if model == "" {
		model = e.provider.DefaultModel()
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	messages := historyToMessages(input.History)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Text: input.UserMessage})

	output := &Output{}
	defs := e.registry.ToDefs()

	state := stateThinking
	var pending []llm.ToolCall

	for state != stateDone && state != stateFailed {
		switch state {
		case stateThinking:
			if output.Turns >= maxTurns {
				output.Text = "I wasn't able to finish that request within the allowed number of steps. Could you try a narrower question?"
				e.emit(input, output.Text, true)
				state = stateDone
				continue
			}
			output.Turns++

			resp, err := e.provider.Complete(ctx, &llm.Request{
				Model:     model,
				System:    input.SystemPrompt,
				MaxTokens: maxTokens,
				Messages:  messages,
				Tools:     defs,
			})
			if err != nil {
				if ctx.Err() != nil {
					output.Text = "That took longer than I'm allowed to spend. Please try again."
					e.emit(input, output.Text, true)
					state = stateDone
					continue
				}
				state = stateFailed
				return output, fmt.Errorf("completion failed on turn %d: %w", output.Turns, err)
			}

			output.TokensUsed.InputTokens += resp.Usage.InputTokens
			output.TokensUsed.OutputTokens += resp.Usage.OutputTokens

			if resp.Text != "" {
				e.emit(input, resp.Text, len(resp.ToolCalls) == 0)
			}

			messages = append(messages, llm.Message{
				Role:      llm.RoleAssistant,
				Text:      resp.Text,
				ToolCalls: resp.ToolCalls,
			})

			if len(resp.ToolCalls) > 0 {
				pending = resp.ToolCalls
				state = stateActing
				continue
			}
			output.Text = resp.Text
			state = stateDone

		case stateActing:
			returns := make([]llm.ToolReturn, 0, len(pending))
			for _, call := range pending {
				returns = append(returns, e.execute(ctx, input.Context, call, output))
			}
			pending = nil
			messages = append(messages, llm.Message{Role: llm.RoleUser, ToolReturns: returns})
			state = stateObserving

		case stateObserving:
			// Observations are already folded into the transcript. Go
			// back to the model for the next decision.
			state = stateThinking
		}
	}

	return output, nil
}

// execute runs a single tool call and converts the outcome into a tool
// return the model can read. Tool failures are reported to the model rather
// than aborting the run.
func (e *Engine) execute(ctx context.Context, agentCtx *core.Context, call llm.ToolCall, output *Output) llm.ToolReturn {
	start := time.Now()
	ret := llm.ToolReturn{CallID: call.ID, Name: call.Name}

	tool, ok := e.registry.Get(call.Name)
	if !ok {
		log.Printf("⚠️ model requested unknown tool %q", call.Name)
		ret.Content = fmt.Sprintf("unknown tool: %s", call.Name)
		ret.IsError = true
		output.Steps = append(output.Steps, Step{Tool: call.Name, Input: string(call.Input), Duration: time.Since(start)})
		return ret
	}

	params := &core.ToolParams{Input: call.Input}
	if agentCtx != nil {
		params.UserID = agentCtx.UserID
		params.SessionID = agentCtx.SessionID
		params.RequestID = agentCtx.RequestID
	}

	result, err := tool.Execute(ctx, params)
	duration := time.Since(start)
	step := Step{Tool: call.Name, Input: string(call.Input), Duration: duration}

	switch {
	case err != nil:
		log.Printf("⚠️ tool %s errored after %s: %v", call.Name, duration.Round(time.Millisecond), err)
		ret.Content = fmt.Sprintf("tool execution failed: %v", err)
		ret.IsError = true
	case !result.Success:
		ret.Content = result.Error
		ret.IsError = true
	default:
		step.Success = true
		ret.Content = result.ResultContent()
	}

	output.Steps = append(output.Steps, step)
	return ret
}

func (e *Engine) emit(input *Input, text string, done bool) {
	if input.StreamCallback != nil {
		input.StreamCallback(text, done)
	}
}

func historyToMessages(history []core.Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == core.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Text: m.Content})
	}
	return messages
}
