package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size":   {Values: []string{"letter", "a4", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},
	"format":      {Values: []string{"docx", "pdf"}},

	"config":   {FileGlob: "*.yaml,*.yml"},
	"cjk-font": {FileGlob: "*.ttf"},

	"output": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Convert flags are extracted from the same FlagSet used for parsing.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to DOCX and PDF",
			Flags:       extractFlagsFromFlagSet(buildConvertFlagSet(&convertFlags{})),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name: "doctor",
			Desc: "Check fonts and environment",
			Flags: []flagDef{
				{Long: "json", Type: flagBool, Desc: "print results as JSON"},
				{Long: "cjk-font", Type: flagFile, Desc: "TrueType font to check", FileGlob: "*.ttf"},
			},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		writeZsh(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// globs splits a comma-separated glob list.
func globs(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, ",")
}

func writeBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for mdexport\n")
	b.WriteString("_mdexport() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "    %s)\n", c.Name)

		var valued []flagDef
		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
			if f.Type != flagBool {
				valued = append(valued, f)
			}
		}

		if len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range valued {
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(f.Values, " "))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
				default:
					b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
				}
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case len(words) > 0 && c.FilePattern != "":
			b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
			b.WriteString("        fi\n")
		case len(words) > 0:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
		case c.Name == "help":
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o default -F _mdexport mdexport\n")
}

func writeZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef mdexport\n\n")
	b.WriteString("_mdexport() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			action := zshAction(f)
			desc := zshEscape(f.Desc)
			if f.Short != "" {
				fmt.Fprintf(b, "            '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "            '1:shell:(%s)'\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			var parts []string
			for _, g := range globs(c.FilePattern) {
				parts = append(parts, "-g '"+g+"'")
			}
			fmt.Fprintf(b, "            '1:input:_files %s'\n", strings.Join(parts, " "))
		case c.Name == "help":
			fmt.Fprintf(b, "            '1:command:(%s)'\n", commandNames(cmds))
		default:
			b.WriteString("            '*: :'\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _mdexport mdexport\n")
}

// zshAction returns the _arguments action suffix for a flag.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		var parts []string
		for _, g := range globs(f.FileGlob) {
			parts = append(parts, "-g \""+g+"\"")
		}
		return ":" + f.Long + ":_files " + strings.Join(parts, " ")
	case flagDir:
		return ":" + f.Long + ":_files -/"
	default:
		return ":" + f.Long + ": "
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func writeFish(b *strings.Builder, cmds []commandDef) {
	names := commandNames(cmds)

	b.WriteString("# fish completion for mdexport\n")
	b.WriteString("complete -c mdexport -f\n\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c mdexport -n \"not __fish_seen_subcommand_from %s\" -a %s -d '%s'\n", names, c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("-n \"__fish_seen_subcommand_from %s\"", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c mdexport %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile, flagDir:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscape(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "complete -c mdexport %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(b, "complete -c mdexport %s -F\n", cond)
		case c.Name == "help":
			fmt.Fprintf(b, "complete -c mdexport %s -a '%s'\n", cond, names)
		}
	}
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdexport completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(mdexport completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdexport completion fish > ~/.config/fish/completions/mdexport.fish")
}
