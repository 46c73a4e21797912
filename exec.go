package codex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/codex/internal/command"
	"github.com/dekarrin/codex/internal/cxerrors"
	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/presets"
	"github.com/dekarrin/codex/internal/puzzle"
	"github.com/dekarrin/codex/internal/util"
)

var commandHelp = [][2]string{
	{"HELP [COMMAND]", "Show this help, or the help for a single command."},
	{"NEW [DIFFICULTY] [SEED]", "Start a new puzzle. Leave out the seed to get a random one; give only a seed to keep the current difficulty."},
	{"SEED", "Show the seed and difficulty of the current puzzle so it can be shared."},
	{"EXAMPLES", "List the intercepted transmissions and which ones your rules produce."},
	{"RULES", "List your rules, numbered."},
	{"ADD A -> B C", "Add a rule that rewrites symbol A as B followed by C. Several right-hand sides may be given at once, as in ADD 1 -> 2 3 | 3 2."},
	{"DEL N", "Delete your rule number N."},
	{"CLEAR", "Delete all of your rules."},
	{"SHOW N", "Show, step by step, how your rules produce transmission number N."},
	{"DIFFICULTIES", "List the difficulties NEW accepts."},
	{"QUIT", "Leave the engine."},
}

// Execute applies cmd to the current puzzle and returns the output to show.
// Errors caused by the player's input are created with cxerrors and carry a
// message fit for display. QUIT is not handled here; the caller decides what
// quitting means.
func (eng *Engine) Execute(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case "HELP":
		return eng.executeHelp(cmd)
	case "NEW":
		return eng.executeNew(cmd)
	case "SEED":
		return eng.puzzleSummary(), nil
	case "EXAMPLES":
		return eng.examplesTable(), nil
	case "RULES":
		return eng.rulesList(), nil
	case "ADD":
		return eng.executeAdd(cmd)
	case "DEL":
		return eng.executeDel(cmd)
	case "CLEAR":
		eng.rules = nil
		return "All rules deleted. " + eng.recheck(), nil
	case "SHOW":
		return eng.executeShow(cmd)
	case "DIFFICULTIES":
		return eng.difficultiesTable(), nil
	default:
		return "", cxerrors.Interpreterf("I don't know how to %q", cmd.Verb)
	}
}

func (eng *Engine) executeHelp(cmd command.Command) (string, error) {
	help := commandHelp
	if len(cmd.Args) > 0 {
		topic := cmd.Args[0]
		if expanded, ok := command.VerbAliases[topic]; ok {
			topic = expanded
		}

		help = nil
		for _, entry := range commandHelp {
			if strings.Fields(entry[0])[0] == topic {
				help = append(help, entry)
			}
		}
		if len(help) == 0 {
			return "", cxerrors.Interpreterf("There is no command called %q", cmd.Args[0])
		}
	}

	ed := rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n", NoTrailingLineSeparators: true}).
		InsertDefinitionsTable(0, help, consoleOutputWidth)

	if len(cmd.Args) == 0 {
		ed = ed.Insert(0, "Here are the commands you can use:\n")
	}
	return ed.String(), nil
}

func (eng *Engine) executeNew(cmd command.Command) (string, error) {
	diff := eng.session.Puzzle().Difficulty
	var seed string

	switch len(cmd.Args) {
	case 0:
	case 1:
		if d, ok := eng.presets.Find(cmd.Args[0]); ok {
			diff = d
		} else if s, err := puzzle.NormalizeSeed(cmd.Args[0]); err == nil {
			seed = s
		} else {
			return "", cxerrors.Interpreterf("%q is neither a difficulty nor a seed; difficulties are %s", cmd.Args[0], diffList(eng.presets))
		}
	default:
		d, ok := eng.presets.Find(cmd.Args[0])
		if !ok {
			return "", cxerrors.Interpreterf("There is no difficulty %q; choose one of %s", cmd.Args[0], diffList(eng.presets))
		}
		diff = d
		s, err := puzzle.NormalizeSeed(cmd.Args[1])
		if err != nil {
			return "", cxerrors.WrapInterpreterf(err, "%q is not a valid seed; a seed is %d letters or digits", cmd.Args[1], puzzle.SeedLength)
		}
		seed = s
	}

	p, err := puzzle.New(diff, seed)
	if err != nil {
		return "", fmt.Errorf("create puzzle: %w", err)
	}
	eng.startSession(p)

	return "New puzzle started.\n\n" + eng.puzzleSummary() + "\n\n" + eng.examplesTable(), nil
}

func (eng *Engine) executeAdd(cmd command.Command) (string, error) {
	rules, err := grammar.ParseRuleLine(cmd.Text)
	if err != nil {
		return "", cxerrors.WrapInterpreterf(err, "I couldn't read that rule: %s", err.Error())
	}

	maxSym := grammar.Symbol(eng.session.Puzzle().Difficulty.Symbols)
	have := eng.playerGrammar()
	for _, r := range rules {
		for _, s := range []grammar.Symbol{r.LHS, r.RHS[0], r.RHS[1]} {
			if s > maxSym {
				return "", cxerrors.Interpreterf("Symbol %s is not used in this puzzle; symbols go from %s to %s", s, grammar.Start, maxSym)
			}
		}
		if have.Has(r) {
			return "", cxerrors.Interpreterf("You already have the rule %s", r)
		}
		have.Add(r)
	}

	eng.rules = append(eng.rules, rules...)

	var added []string
	for _, r := range rules {
		added = append(added, r.String())
	}
	return fmt.Sprintf("Added %s. %s", util.MakeTextList(added, false), eng.recheck()), nil
}

func (eng *Engine) executeDel(cmd command.Command) (string, error) {
	if len(eng.rules) == 0 {
		return "", cxerrors.Interpreterf("You don't have any rules to delete")
	}
	if cmd.Index > len(eng.rules) {
		return "", cxerrors.Interpreterf("There is no rule %d; you have %d", cmd.Index, len(eng.rules))
	}

	removed := eng.rules[cmd.Index-1]
	eng.rules = append(eng.rules[:cmd.Index-1:cmd.Index-1], eng.rules[cmd.Index:]...)

	return fmt.Sprintf("Deleted %s. %s", removed, eng.recheck()), nil
}

func (eng *Engine) executeShow(cmd command.Command) (string, error) {
	examples := eng.session.Puzzle().Examples
	if cmd.Index > len(examples) {
		return "", cxerrors.Interpreterf("There is no transmission %d; there are %d", cmd.Index, len(examples))
	}

	steps, ok := eng.session.DerivationSteps(cmd.Index - 1)
	if !ok {
		return fmt.Sprintf("Transmission %d is not yet solved by your rules.", cmd.Index), nil
	}

	data := [][]string{{"Step", "Sequence", "Rule"}}
	for i, st := range steps {
		ruleText := ""
		if st.Rule != nil {
			ruleText = st.Rule.String()
		}
		data = append(data, []string{strconv.Itoa(i), grammar.FormatSymbols(st.Symbols()), ruleText})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	header := fmt.Sprintf("Derivation of transmission %d (%s):\n", cmd.Index, grammar.FormatSymbols(examples[cmd.Index-1].Result))
	return rosed.Edit(header).
		InsertTableOpts(rosed.End, data, consoleOutputWidth, tableOpts).
		String(), nil
}

// puzzleSummary describes the current puzzle in a few lines.
func (eng *Engine) puzzleSummary() string {
	p := eng.session.Puzzle()
	d := p.Difficulty

	msg := fmt.Sprintf("Seed %s, difficulty %s.\n", p.Seed, d)
	msg += fmt.Sprintf("Symbols 1 to %d. The hidden grammar has %d rules, each of the form A -> B C.\n", d.Symbols, p.RuleCount())
	msg += fmt.Sprintf("Symbol %s is the start symbol.", grammar.Start)
	return msg
}

// examplesTable gives the table of examples along with whether each is
// produced by the player's current rules.
func (eng *Engine) examplesTable() string {
	examples := eng.session.Puzzle().Examples
	if len(examples) == 0 {
		return "There are no transmissions to decode."
	}

	parsable := eng.session.Parsable()

	data := [][]string{{"#", "Transmission", "Status"}}
	for i := range examples {
		status := ""
		if parsable[i] {
			status = "DECODED"
		}
		data = append(data, []string{strconv.Itoa(i + 1), grammar.FormatSymbols(examples[i].Result), status})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}

// rulesList gives the player's rules, numbered from 1.
func (eng *Engine) rulesList() string {
	if len(eng.rules) == 0 {
		return "You have no rules yet. Add one with ADD, for example ADD 1 -> 2 3."
	}

	var sb strings.Builder
	sb.WriteString("Your rules:\n")
	for i, r := range eng.rules {
		sb.WriteString(fmt.Sprintf("%3d. %s", i+1, r))
		if i+1 < len(eng.rules) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func (eng *Engine) difficultiesTable() string {
	current := eng.session.Puzzle().Difficulty.Key

	data := [][]string{{"Key", "Name", "Symbols", "Rules", "Examples", "Length", ""}}
	for _, d := range eng.presets.Difficulties {
		length := strconv.Itoa(d.StringLength)
		if d.MinLength() != d.StringLength {
			length = fmt.Sprintf("%d-%d", d.MinLength(), d.StringLength)
		}
		marker := ""
		if d.Key == current {
			marker = "(current)"
		}
		data = append(data, []string{
			d.Key, d.Label,
			strconv.Itoa(d.Symbols), strconv.Itoa(d.Rules), strconv.Itoa(d.ExampleCount),
			length, marker,
		})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}

// diffList gives the keys of the difficulties in s as an English list.
func diffList(s presets.Set) string {
	return util.MakeTextList(s.Keys(), true)
}
