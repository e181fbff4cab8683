package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/distribution/reference"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wharf/internal/docker"
)

const noneLabel = "<none>"

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var allTags bool

	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"ls"},
		Short:   "List local images",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client(cmd)
			if err != nil {
				return err
			}
			images, err := client.Images(cmd.Context())
			if err != nil {
				return wrapDialError(err)
			}
			if asJSON {
				return writeJSON(cmd, images)
			}

			out := cmd.OutOrStdout()
			if len(images) == 0 {
				fmt.Fprintln(out, "No images found")
				return nil
			}
			rows := imageRows(images, allTags, time.Now())
			fmt.Fprintln(out, renderTable(
				[]string{"Repository", "Tag", "Image ID", "Created", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the daemon's image records as JSON")
	cmd.Flags().BoolVar(&allTags, "all-tags", false, "Print one row per tag instead of one per image")
	return cmd
}

// imageRows builds table rows in daemon order. Without allTags each image
// shows its first tag only.
func imageRows(images []docker.Image, allTags bool, now time.Time) [][]string {
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		tags := img.Tags()
		if len(tags) == 0 {
			tags = []string{""}
		} else if !allTags {
			tags = tags[:1]
		}
		created := humanize.RelTime(img.CreatedAt(), now, "ago", "from now")
		size := humanize.Bytes(uint64(max(img.Size, 0)))
		for _, tag := range tags {
			repo, label := splitRepoTag(tag)
			rows = append(rows, []string{repo, label, img.ShortID(), created, size})
		}
	}
	return rows
}

// splitRepoTag returns the familiar repository name and tag of ref, or
// <none> placeholders when ref is empty or unparseable.
func splitRepoTag(ref string) (string, string) {
	if ref == "" {
		return noneLabel, noneLabel
	}
	named, err := reference.ParseNormalizedNamed(ref)
	if err != nil {
		return ref, noneLabel
	}
	tag := noneLabel
	if tagged, ok := named.(reference.Tagged); ok {
		tag = tagged.Tag()
	}
	return reference.FamiliarName(named), tag
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
