package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"wharf/internal/docker"
	"wharf/internal/logging"
)

const (
	interactiveBucket = 1
	plainBucket       = 10
)

func newPullCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "pull NAME",
		Short: "Pull an image and stream the daemon's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := docker.NormalizeImageName(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			stream, err := client.Pull(cmd.Context(), name)
			if err != nil {
				return wrapDialError(err)
			}
			defer stream.Close()

			out := cmd.OutOrStdout()
			if raw {
				err = copySegments(out, stream)
			} else {
				err = renderProgress(out, stream, isTerminal(out), logger)
			}
			if err != nil {
				return err
			}
			logger.Debug("pull finished",
				slog.String(logging.FieldImage, name),
				slog.Int("segments", stream.SegmentCount()),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Write decoded chunk payloads verbatim instead of rendering progress")
	return cmd
}

func copySegments(out io.Writer, stream *docker.PullStream) error {
	for seg, err := range stream.Segments() {
		if err != nil {
			return err
		}
		if _, err := out.Write(seg); err != nil {
			return err
		}
	}
	return nil
}

// renderProgress prints one line per progress message the sampler lets
// through. Terminals get colored status text and finer progress steps.
func renderProgress(out io.Writer, stream *docker.PullStream, interactive bool, logger *slog.Logger) error {
	bucket := float64(plainBucket)
	if interactive {
		bucket = interactiveBucket
	}
	sampler := logging.NewProgressSampler(bucket)
	for ev, err := range stream.Events() {
		if err != nil {
			return err
		}
		if ev.ID != "" && !sampler.ShouldLog(ev.ID, ev.Status, ev.Percent()) {
			continue
		}
		logger.Debug("pull progress",
			slog.String(logging.FieldLayer, ev.ID),
			slog.String("status", ev.Status),
			slog.Float64("percent", ev.Percent()),
		)
		fmt.Fprintln(out, formatEvent(ev, interactive))
	}
	return nil
}

func formatEvent(ev docker.PullEvent, interactive bool) string {
	status := strings.TrimSpace(ev.Status)
	if interactive {
		status = statusColors(status).Sprint(status)
	}
	var b strings.Builder
	if ev.ID != "" {
		b.WriteString(ev.ID)
		b.WriteString(": ")
	}
	b.WriteString(status)
	switch {
	case interactive && ev.Progress != "":
		b.WriteString(" ")
		b.WriteString(ev.Progress)
	case ev.Percent() >= 0:
		fmt.Fprintf(&b, " %3.0f%%", ev.Percent())
	}
	return b.String()
}

func statusColors(status string) text.Colors {
	switch {
	case strings.HasPrefix(status, "Pull complete"),
		strings.HasPrefix(status, "Already exists"),
		strings.HasPrefix(status, "Status:"):
		return text.Colors{text.FgGreen}
	case strings.HasPrefix(status, "Downloading"),
		strings.HasPrefix(status, "Extracting"):
		return text.Colors{text.FgCyan}
	case strings.HasPrefix(status, "Digest:"):
		return text.Colors{text.Faint}
	default:
		return nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
