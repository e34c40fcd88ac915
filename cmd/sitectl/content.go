package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Read and write content sections",
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every saved section",
	Args:  cobra.NoArgs,
	RunE:  runContentList,
}

var contentGetCmd = &cobra.Command{
	Use:   "get <section>",
	Short: "Print one section, falling back to the local cache when the server is down",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentGet,
}

var contentSetCmd = &cobra.Command{
	Use:   "set <section> <file.json|->",
	Short: "Replace a section with the JSON object in file",
	Args:  cobra.ExactArgs(2),
	RunE:  runContentSet,
}

func init() {
	contentSetCmd.Flags().Bool("local", false, "merge the fields into the local cache only")
	contentCmd.AddCommand(contentListCmd, contentGetCmd, contentSetCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sections, err := newRemote().All(ctx)
	if err != nil {
		return err
	}
	return printJSON(sections)
}

func runContentGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !content.IsKnownSection(name) {
		return fmt.Errorf("%w: %s", contentstore.ErrUnknownSection, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	store := contentstore.NewCachedStore(newRemote(), newLocal(), newLogger())
	data, found, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("section %s has no saved content", name)
	}
	return printJSON(data)
}

func runContentSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	raw, err := readInput(args[1])
	if err != nil {
		return err
	}

	var data content.Section
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return errors.New("input must be a JSON object")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if localOnly, _ := cmd.Flags().GetBool("local"); localOnly {
		merged, err := newLocal().Merge(ctx, name, data)
		if err != nil {
			return err
		}
		return printJSON(merged)
	}

	store := contentstore.NewCachedStore(newRemote(), newLocal(), newLogger())
	if err := store.Set(ctx, name, data); err != nil {
		return err
	}
	fmt.Printf("Saved section %s\n", name)
	return nil
}
