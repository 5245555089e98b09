package debounce_test

import (
	"fmt"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/debounce"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
)

func Example_validateWithDebounce() {
	s := debounce.New(10*time.Millisecond, nil)

	goals := debounce.Key{Section: "basic_info", Field: "learning_goals"}
	pace := debounce.Key{Section: "basic_info", Field: "preferred_pace"}
	rules := validation.FieldRules{Name: "learning_goals", Label: "Learning goals", Rules: []validation.Rule{validation.Required()}}

	results := make(chan validation.Result, 1)
	onResult := func(_ debounce.Key, res validation.Result) { results <- res }

	// Rapid edits: only the last value is validated.
	s.ValidateWithDebounce(goals, []string{}, rules, onResult)
	s.ValidateWithDebounce(goals, []string{"web_dev"}, rules, onResult)
	fmt.Println("valid:", (<-results).IsValid)

	// The field is removed before its timer fires.
	s.ValidateWithDebounce(pace, "", rules, onResult)
	s.ClearTimeout(pace)
	fmt.Println("pending:", s.Pending())

	// On teardown, Close cancels anything left and waits for running callbacks.
	s.Close()
	fmt.Println("accepted after close:", s.ValidateWithDebounce(goals, []string{"ai_ml"}, rules, onResult))

	// Output:
	// valid: true
	// pending: 0
	// accepted after close: false
}
