// Command cli runs spec §8's literal-input scenarios end to end through
// the builder -> validate -> analyze pipeline and prints a results
// table, in the spirit of the teacher's demo pretty()-style console
// output (cmd/cli/main.go there runs a handful of named circuits and
// prints a sorted histogram; here each "circuit" is a fault-tree
// scenario and the histogram is a cut-set/probability table).
package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kegliz/fta/fta/analyze"
	"github.com/kegliz/fta/fta/builder"
	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/validate"
)

func main() {
	fmt.Println("--- Scenario 1: OR of two basic events ---")
	orOfTwo()
	fmt.Println("\n--- Scenario 2: AND of two basic events ---")
	andOfTwo()
	fmt.Println("\n--- Scenario 3: 2-of-3 voting gate ---")
	twoOfThree()
	fmt.Println("\n--- Scenario 6: single exponential basic event ---")
	exponentialAlone()
	fmt.Println("\n--- Scenario 7: house event enabling/disabling a branch ---")
	houseEventTrue()
	houseEventFalse()
}

// orOfTwo builds A(p=0.1) OR B(p=0.2); exact top = 0.28, rare-event = 0.30.
func orOfTwo() {
	b := builder.New("or-of-two")
	b.AddExpression("pa", "const", nil, []float64{0.1})
	b.AddExpression("pb", "const", nil, []float64{0.2})
	b.AddBasicEvent("A", "pa")
	b.AddBasicEvent("B", "pb")
	b.AddGate("TOP", "OR", []string{"A", "B"}, 0)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg := analyze.DefaultConfig()
	report(tree, analyze.Run(context.Background(), tree, cfg, nil))

	cfg.RareEvent = true
	res := analyze.Run(context.Background(), tree, cfg, nil)
	fmt.Printf("rare-event approximation: %.4f\n", res.Top)
}

// andOfTwo builds A(p=0.1) AND B(p=0.2); top = 0.02.
func andOfTwo() {
	b := builder.New("and-of-two")
	b.AddExpression("pa", "const", nil, []float64{0.1})
	b.AddExpression("pb", "const", nil, []float64{0.2})
	b.AddBasicEvent("A", "pa")
	b.AddBasicEvent("B", "pb")
	b.AddGate("TOP", "AND", []string{"A", "B"}, 0)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report(tree, analyze.Run(context.Background(), tree, analyze.DefaultConfig(), nil))
}

// twoOfThree builds a 2-of-3 voting gate over A,B,C all p=0.1; top = 0.028.
func twoOfThree() {
	b := builder.New("two-of-three")
	b.AddExpression("p", "const", nil, []float64{0.1})
	b.AddBasicEvent("A", "p")
	b.AddBasicEvent("B", "p")
	b.AddBasicEvent("C", "p")
	b.AddGate("TOP", "KOFN", []string{"A", "B", "C"}, 2)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report(tree, analyze.Run(context.Background(), tree, analyze.DefaultConfig(), nil))
}

// exponentialAlone builds a single basic event under the top with
// lambda = 1e-3/h, t = 1000h; top = 1 - e^-1 ~= 0.6321.
func exponentialAlone() {
	b := builder.New("exponential-alone")
	b.AddExpression("lambda", "const", nil, []float64{1e-3})
	b.AddExpression("t", "const", nil, []float64{1000})
	b.AddExpression("p", "exponential", []string{"lambda", "t"}, nil)
	b.AddBasicEvent("A", "p")
	b.AddGate("TOP", "OR", []string{"A"}, 0)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report(tree, analyze.Run(context.Background(), tree, analyze.DefaultConfig(), nil))
}

// houseEventTrue builds OR(A(p=0.1), H(true)); top = 1.
func houseEventTrue() {
	fmt.Println("house event true:")
	b := builder.New("house-true")
	b.AddExpression("pa", "const", nil, []float64{0.1})
	b.AddBasicEvent("A", "pa")
	b.AddHouseEvent("H", true)
	b.AddGate("TOP", "OR", []string{"A", "H"}, 0)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report(tree, analyze.Run(context.Background(), tree, analyze.DefaultConfig(), nil))
}

// houseEventFalse builds OR(A(p=0.1), H(false)); top = 0.1.
func houseEventFalse() {
	fmt.Println("house event false:")
	b := builder.New("house-false")
	b.AddExpression("pa", "const", nil, []float64{0.1})
	b.AddBasicEvent("A", "pa")
	b.AddHouseEvent("H", false)
	b.AddGate("TOP", "OR", []string{"A", "H"}, 0)
	b.SetTop("TOP")

	tree, _, err := b.Seal(validate.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report(tree, analyze.Run(context.Background(), tree, analyze.DefaultConfig(), nil))
}

// report prints a sorted minimal-cut-set table and the top-event
// probability, mirroring the teacher's pretty()'s "sort keys, then
// print" shape.
func report(tree *event.FaultTree, res analyze.Result) {
	fmt.Printf("tree %q:\n", tree.Name)
	for _, n := range event.Snapshot(tree) {
		indent := strings.Repeat("  ", n.Depth+1)
		if n.Kind == "basic" || n.Kind == "house" {
			fmt.Printf("%s%s (%s)\n", indent, n.Original, n.Kind)
			continue
		}
		fmt.Printf("%s%s %s %v\n", indent, n.Original, n.Word, n.Children)
	}

	cuts := append([][]string(nil), res.CutSetIDs...)
	sort.Slice(cuts, func(i, j int) bool {
		if len(cuts[i]) != len(cuts[j]) {
			return len(cuts[i]) < len(cuts[j])
		}
		for k := range cuts[i] {
			if cuts[i][k] != cuts[j][k] {
				return cuts[i][k] < cuts[j][k]
			}
		}
		return false
	})
	for _, c := range cuts {
		fmt.Printf("  cut set %v\n", c)
	}
	fmt.Printf("top probability: %.4f\n", res.Top)
	for _, w := range res.Warnings {
		fmt.Println("  warning:", w)
	}
}
