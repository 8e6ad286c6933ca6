package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/config"
	"github.com/fwojciec/versefill/fetch"
	"github.com/fwojciec/versefill/render"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config config.Config
	Logger *slog.Logger

	Verses   versefill.VerseWriter
	Imports  versefill.ImportService
	Detector versefill.Detector
	Fetcher  *fetch.Fetcher
	Renderer *render.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file (default ~/.versefill/config.yaml)" type:"path"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Render  RenderCmd  `cmd:"" help:"Fill verse text into a message outline"`
	Refs    RefsCmd    `cmd:"" help:"Print the references found in an outline as JSON"`
	Import  ImportCmd  `cmd:"" help:"Load verse text from a tab-separated file"`
	Imports ImportsCmd `cmd:"" help:"List past verse imports"`
	Books   BooksCmd   `cmd:"" help:"List the books of the Bible and their abbreviations"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	File        string `arg:"" help:"Outline file, or - for stdin"`
	Output      string `short:"o" help:"Write to this file instead of stdout"`
	Layout      string `short:"l" help:"Layout: inline or margin (default from config)"`
	Resolver    string `enum:"auto,on,off" default:"auto" help:"Use the Gemini resolver: auto follows the config"`
	MarginWidth int    `help:"Width of the verse label column in margin layout"`
}

// RefsCmd is the "refs" subcommand.
type RefsCmd struct {
	File     string `arg:"" help:"Outline file, or - for stdin"`
	Resolver string `enum:"auto,on,off" default:"auto" help:"Use the Gemini resolver: auto follows the config"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File  string `arg:"" help:"TSV file of book, chapter, verse and text, or - for stdin"`
	Force bool   `short:"f" help:"Import even if the same content was imported before"`
}

// ImportsCmd is the "imports" subcommand.
type ImportsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of imports to show"`
}

// BooksCmd is the "books" subcommand.
type BooksCmd struct{}
