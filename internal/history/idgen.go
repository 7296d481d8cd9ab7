package history

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// adjectives is a list of descriptive words for memorable ID generation.
var adjectives = []string{
	"amber", "azure", "bold", "brave", "bright",
	"brisk", "calm", "clear", "cobalt", "coral",
	"crisp", "eager", "fleet", "frank", "fresh",
	"gold", "hardy", "jade", "keen", "lively",
	"lunar", "mellow", "nimble", "polar", "quick",
	"quiet", "rapid", "ruby", "solar", "sound",
	"spry", "steady", "stout", "swift", "vivid",
}

// nouns is a list of concrete nouns for memorable ID generation.
var nouns = []string{
	"anchor", "arrow", "aspen", "beacon", "birch",
	"breeze", "brook", "cedar", "comet", "cove",
	"crest", "delta", "drift", "ember", "falcon",
	"fjord", "flint", "forge", "glade", "grove",
	"harbor", "hawk", "heron", "inlet", "lantern",
	"maple", "mesa", "orbit", "otter", "prism",
	"quartz", "ridge", "spruce", "summit", "willow",
}

// GenerateID creates a unique identifier in adjective_noun_YYYYMMDD_HHMMSS
// format. Uses crypto/rand for random word selection.
func GenerateID() (string, error) {
	adj, err := randomWord(adjectives)
	if err != nil {
		return "", fmt.Errorf("selecting random adjective: %w", err)
	}

	noun, err := randomWord(nouns)
	if err != nil {
		return "", fmt.Errorf("selecting random noun: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s", adj, noun, timestamp), nil
}

// randomWord selects a random word from the given slice using crypto/rand.
func randomWord(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("word list is empty")
	}

	max := big.NewInt(int64(len(words)))
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generating random number: %w", err)
	}

	return words[n.Int64()], nil
}
