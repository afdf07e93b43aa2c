package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey      string        `env:"GEMINI_API_KEY" help:"Gemini API key."`
	Model       string        `env:"GEMINI_MODEL" help:"Gemini model name."`
	LogLevel    string        `env:"LOG_LEVEL" default:"INFO" help:"Log level: DEBUG, INFO, WARN, ERROR."`
	Output      string        `short:"o" env:"OUTPUT_PATH" default:"blog_analysis.xlsx" help:"Spreadsheet output path."`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page."`
	Concurrency int           `short:"c" default:"1" help:"Concurrent page limit."`
	Extractor   string        `enum:"goquery,trafilatura" default:"goquery" help:"Content extraction strategy."`
	Include     []string      `short:"F" name:"filter" help:"Keep only URLs matching this regex (repeatable)."`
	Exclude     []string      `short:"X" help:"Drop URLs matching this regex (repeatable)."`
	Retries     int           `default:"0" help:"Summarization retries per page (0 = single attempt)."`
	RPS         float64       `name:"rps" default:"1" help:"Max page fetches per second per host."`

	Serve ServeCmd `cmd:"" help:"Start the HTTP server"`
	Run   RunCmd   `cmd:"" help:"Analyze one sitemap and exit"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"ADDR" default:":8080" help:"Listen address"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL string `arg:"" help:"Sitemap URL"`
}
