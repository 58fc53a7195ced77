package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/timecalc"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

var (
	groomingPet      string
	groomingDateTime string
	groomingTask     string
)

var groomingCmd = &cobra.Command{
	Use:   "grooming",
	Short: "Manage grooming appointments",
}

var groomingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List grooming appointments",
	Args:  cobra.NoArgs,
	RunE:  runGroomingList,
}

var groomingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a grooming appointment",
	Args:  cobra.NoArgs,
	RunE:  runGroomingAdd,
}

var groomingUpdateCmd = &cobra.Command{
	Use:   "update <entry#>",
	Short: "Replace a grooming appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroomingUpdate,
}

var groomingDeleteCmd = &cobra.Command{
	Use:   "delete <entry#>",
	Short: "Delete a grooming appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroomingDelete,
}

func init() {
	for _, c := range []*cobra.Command{groomingAddCmd, groomingUpdateCmd} {
		c.Flags().StringVar(&groomingPet, "pet", "", "Pet name")
		c.Flags().StringVar(&groomingDateTime, "datetime", "", "Date and time (YYYY-MM-DD HH:MM); add defaults to now")
		c.Flags().StringVar(&groomingTask, "task", "", "Grooming task, e.g. Bath or Nail trim")
	}

	groomingCmd.AddCommand(groomingListCmd)
	groomingCmd.AddCommand(groomingAddCmd)
	groomingCmd.AddCommand(groomingUpdateCmd)
	groomingCmd.AddCommand(groomingDeleteCmd)
}

func runGroomingList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	entries := storage.OpenGroomingStore(cfg.GroomingPath()).Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No grooming appointments found.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintln(out, e.Display(i+1))
	}
	return nil
}

func runGroomingAdd(cmd *cobra.Command, args []string) error {
	dateTime := groomingDateTime
	if !cmd.Flags().Changed("datetime") {
		dateTime = now().Format(timecalc.DateTimeLayout)
	}
	e, err := validate.Grooming(groomingPet, dateTime, groomingTask)
	if err != nil {
		return userError(err)
	}
	store := storage.OpenGroomingStore(cfg.GroomingPath())
	if err := store.Add(e); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", e.Display(len(store.Entries())))
	return nil
}

func runGroomingUpdate(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0], "entry")
	if err != nil {
		return err
	}
	e, err := validate.Grooming(groomingPet, groomingDateTime, groomingTask)
	if err != nil {
		return userError(err)
	}
	if err := storage.OpenGroomingStore(cfg.GroomingPath()).Update(idx, e); err != nil {
		return storeErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", e.Display(idx+1))
	return nil
}

func runGroomingDelete(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0], "entry")
	if err != nil {
		return err
	}
	e, err := storage.OpenGroomingStore(cfg.GroomingPath()).Delete(idx)
	if err != nil {
		return storeErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", e.Display(idx+1))
	return nil
}
