package erniechat

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	oai "github.com/sashabaranov/go-openai"
	. "github.com/stevegt/goadapt"
)

// parse args using kong package
var cli struct {
	Chat struct {
		Prompt    string `arg:"" optional:"" help:"Prompt to send; read from stdin when omitted."`
		Sysmsg    string `short:"s" help:"System message to control the behavior of the model."`
		Search    bool   `help:"Enable Qianfan web search."`
		Citations bool   `help:"Include citation references in search results."`
		Trace     bool   `help:"Include search trace information."`
		Json      bool   `short:"j" help:"Print the raw response body verbatim instead of the reply text."`
	} `cmd:"" help:"Send one chat message to an ERNIE model and print the response."`
	Models  struct{} `cmd:"" help:"List known ERNIE models."`
	Tc      struct{} `cmd:"" help:"Calculate the approximate token count of stdin."`
	Version struct{} `cmd:"" help:"Show version of the ernie command."`
	Config  string   `short:"c" type:"path" help:"Path to YAML config file."`
	Model   string   `short:"m" help:"Model to use for the chat completion."`
	Verbose bool     `short:"v" help:"Show debug information on stderr."`
}

// CliConfig contains the configuration for the ernie command.
type CliConfig struct {
	// Name is the name of the program
	Name string
	// Description is a short description of the program
	Description string
	// Version is the version of the program
	Version string
	// Exit is the function to call to exit the program
	Exit   func(int)
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCliConfig returns a new CliConfig struct with default values populated.
func NewCliConfig() *CliConfig {
	return &CliConfig{
		Name:        "ernie",
		Description: "A command-line tool for chatting with Baidu's ERNIE models via the Qianfan OpenAI-compatible API.",
		Version:     CodeVersion(),
		Exit:        func(i int) { os.Exit(i) },
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Cli parses the given arguments and then executes the appropriate
// subcommand.
//
// We use this function instead of kong.Parse() so that we can pass in
// the arguments to parse.  This allows us to more easily test the
// cli subcommands.
func Cli(args []string, config *CliConfig) (rc int, err error) {
	defer Return(&err)

	options := []kong.Option{
		kong.Name(config.Name),
		kong.Description(config.Description),
		kong.Exit(config.Exit),
		kong.Writers(config.Stdout, config.Stderr),
		kong.Vars{
			"version": config.Version,
		},
	}

	var parser *kong.Kong
	parser, err = kong.New(&cli, options...)
	Ck(err)
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if cli.Verbose {
		os.Setenv("DEBUG", "1")
	}

	cmd := ctx.Command()
	Debug("cmd: %s", cmd)

	switch cmd {
	case "chat", "chat <prompt>":
		rc, err = cmdChat(config)
		Ck(err)
	case "models":
		models := NewModels()
		for _, m := range models.ListModels() {
			Fpf(config.Stdout, "%s\n", m)
		}
	case "tc":
		// calculate the token count of stdin
		buf, err := io.ReadAll(config.Stdin)
		Ck(err)
		count, err := TokenCount(strings.TrimSpace(string(buf)))
		Ck(err)
		Fpf(config.Stdout, "%d\n", count)
	case "version":
		Fpf(config.Stdout, "ernie version %s\n", CodeVersion())
	default:
		Fpf(config.Stderr, "Error: unrecognized command: %s\n", cmd)
		rc = 1
	}
	return
}

// cmdChat sends one chat completion request and prints the result.
func cmdChat(config *CliConfig) (rc int, err error) {
	defer Return(&err)

	cfgPath := cli.Config
	if cfgPath == "" {
		cfgPath = DefaultConfigPath()
	}
	cfg, err := LoadConfig(cfgPath)
	Ck(err)
	if cli.Model != "" {
		cfg.Model = cli.Model
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		Fpf(config.Stderr, "Warning: %s environment variable not set\n", EnvAPIKey)
	}

	prompt := strings.TrimSpace(cli.Chat.Prompt)
	if prompt == "" {
		buf, err := io.ReadAll(config.Stdin)
		Ck(err)
		prompt = strings.TrimSpace(string(buf))
	}
	if prompt == "" {
		Fpf(config.Stderr, "Error: empty prompt\n")
		rc = 1
		return
	}

	// check the prompt against the model's token limit before sending
	models := NewModels()
	if m, ok := models.Available[cfg.Model]; ok {
		var count int
		count, err = TokenCount(cli.Chat.Sysmsg + prompt)
		Ck(err)
		Debug("prompt token estimate: %d limit: %d", count, m.TokenLimit)
		if count > m.TokenLimit {
			Fpf(config.Stderr, "Error: prompt token estimate %d exceeds %s token limit %d -- try reducing input\n", count, m.Name, m.TokenLimit)
			rc = 1
			return
		}
	} else {
		// the remote service is the authority on model names
		Fpf(config.Stderr, "Warning: unknown model %q -- sending anyway\n", cfg.Model)
	}

	var messages []oai.ChatCompletionMessage
	if cli.Chat.Sysmsg != "" {
		messages = append(messages, oai.ChatCompletionMessage{
			Role:    oai.ChatMessageRoleSystem,
			Content: cli.Chat.Sysmsg,
		})
	}
	messages = append(messages, oai.ChatCompletionMessage{
		Role:    oai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := &ChatRequest{
		ChatCompletionRequest: oai.ChatCompletionRequest{
			Model:    cfg.Model,
			Messages: messages,
		},
		WebSearch: &WebSearch{
			Enable:         cli.Chat.Search,
			EnableCitation: cli.Chat.Citations,
			EnableTrace:    cli.Chat.Trace,
		},
	}

	client := NewClient(cfg)
	resp, err := client.CompleteChat(context.Background(), req)
	Ck(err)

	if cli.Chat.Json {
		Fpf(config.Stdout, "%s\n", resp.Raw)
		return
	}
	if len(resp.Choices) == 0 {
		Fpf(config.Stderr, "Error: no choices in response\n")
		rc = 1
		return
	}
	Fpf(config.Stdout, "%s\n", resp.Choices[0].Message.Content)
	for _, sr := range resp.SearchResults {
		Fpf(config.Stdout, "[%d] %s %s\n", sr.Index, sr.Title, sr.URL)
	}
	return
}
