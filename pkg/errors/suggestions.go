package errors

import (
	"runtime"
	"sort"
)

// ContextOS is the context key holding the operating system (e.g., "linux").
const ContextOS = "os"

// OS values for platform-specific suggestions.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Suggestion represents a remediation suggestion with optional conditions.
type Suggestion struct {
	// Text is the suggestion message displayed to the user.
	Text string

	// Conditions are key-value pairs that must all match the error context.
	// If empty, the suggestion applies to all contexts.
	Conditions map[string]string

	// Priority determines order when multiple suggestions apply.
	// Higher priority suggestions are shown first.
	Priority int
}

// Matches returns true if this suggestion's conditions match the given context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates an empty suggestion registry.
func NewRegistry() *Registry {
	return &Registry{
		suggestions: make(map[string][]Suggestion),
	}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text})
}

// RegisterWithCondition adds a suggestion that only applies when the context matches.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text, Conditions: conditions})
}

// RegisterSuggestion adds a complete Suggestion.
func (r *Registry) RegisterSuggestion(code string, suggestion Suggestion) *Registry {
	r.suggestions[code] = append(r.suggestions[code], suggestion)
	return r
}

// Get returns the suggestions for code that match ctx, highest priority first.
// Suggestions of equal priority keep their registration order.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	var matching []Suggestion
	for _, s := range r.suggestions[code] {
		if s.Matches(ctx) {
			matching = append(matching, s)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Priority > matching[j].Priority
	})

	result := make([]string, len(matching))
	for i, s := range matching {
		result[i] = s.Text
	}
	return result
}

// HasSuggestions returns true if any suggestions exist for the error code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.suggestions[code]) > 0
}

// DefaultContext returns a context map with current platform information.
func DefaultContext() map[string]string {
	return map[string]string{ContextOS: runtime.GOOS}
}

// MergeContext combines context maps. Later maps override earlier ones.
func MergeContext(contexts ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, ctx := range contexts {
		for k, v := range ctx {
			result[k] = v
		}
	}
	return result
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global registry with the built-in suggestions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// AttachSuggestions appends registry suggestions matching err's code and context.
func AttachSuggestions(err *ReportError) *ReportError {
	if err == nil {
		return nil
	}
	ctx := MergeContext(DefaultContext(), err.Context)
	if s := defaultRegistry.Get(err.Code, ctx); len(s) > 0 {
		err.Suggestions = append(err.Suggestions, s...)
	}
	return err
}

func init() {
	defaultRegistry.
		Register(ErrDefinitionParseFailed, "The embedded report definition is malformed YAML").
		Register(ErrDefinitionParseFailed, "This is a build problem - rebuild labreport from a clean checkout").
		Register(ErrDefinitionInvalid, "Every task needs a name, aim, problem, constraints, procedure, program, output image and conclusion")

	defaultRegistry.
		RegisterSuggestion(ErrSourceNotFound, Suggestion{Text: "Run labreport from the directory that contains code/ and outputs/", Priority: 10}).
		Register(ErrSourceNotFound, "Check that the program listing exists under code/").
		Register(ErrSourceReadFailed, "Check file permissions on the program listing")

	defaultRegistry.
		RegisterSuggestion(ErrImageNotFound, Suggestion{Text: "Run labreport from the directory that contains code/ and outputs/", Priority: 10}).
		Register(ErrImageNotFound, "Capture the CLI output screenshot into outputs/").
		Register(ErrImageDecodeFailed, "Screenshots must be PNG, JPEG or GIF files").
		Register(ErrImageDecodeFailed, "Re-export the screenshot; the file may be truncated")

	defaultRegistry.
		Register(ErrOutputDirFailed, "Check that deliverables/ can be created in the working directory").
		Register(ErrOutputWriteFailed, "Check file and directory permissions on deliverables/").
		Register(ErrOutputWriteFailed, "Ensure there is sufficient disk space").
		RegisterWithCondition(ErrOutputWriteFailed, "Use 'df -h' to check disk usage", map[string]string{ContextOS: OSLinux}).
		RegisterWithCondition(ErrOutputWriteFailed, "Use 'df -h' to check disk usage", map[string]string{ContextOS: OSDarwin}).
		RegisterWithCondition(ErrOutputWriteFailed, "Close the PDF if it is open in a viewer", map[string]string{ContextOS: OSWindows})

	defaultRegistry.
		Register(ErrLayoutOverflow, "A single block is taller than an A4 page frame").
		Register(ErrRenderFailed, "This may be a bug - please report it with the error details")
}
