// internal/domain/voice/router.go
package voice

import (
	"fmt"
	"strings"
)

// Navigation targets
const (
	TargetMarketplace = "/marketplace"
	TargetCart        = "/cart"
	TargetLogin       = "/login"
	TargetHome        = "/"
)

type rule struct {
	keywords []string
	target   string
}

// Checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{keywords: []string{"marketplace", "seeds"}, target: TargetMarketplace},
	{keywords: []string{"cart"}, target: TargetCart},
	{keywords: []string{"login"}, target: TargetLogin},
	{keywords: []string{"home"}, target: TargetHome},
}

// Result is the outcome of routing one transcript
type Result struct {
	Transcript string `json:"transcript"`
	Recognized bool   `json:"recognized"`
	Target     string `json:"target,omitempty"`
	Notice     string `json:"notice,omitempty"`
}

// Route maps a speech transcript to a navigation target by case-insensitive
// substring match.
func Route(transcript string) Result {
	lower := strings.ToLower(transcript)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Result{Transcript: transcript, Recognized: true, Target: r.target}
			}
		}
	}

	return Result{
		Transcript: transcript,
		Notice:     fmt.Sprintf("Voice command: %s. Command not recognized.", transcript),
	}
}
