package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

var (
	feedingListFull bool
	feedingListPet  int

	petName   string
	petAge    string
	petWeight string

	scheduleTime   string
	scheduleFood   string
	scheduleAmount string
)

var feedingCmd = &cobra.Command{
	Use:   "feeding",
	Short: "Manage pets and their feeding schedules",
}

var feedingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pets, or one pet's feeding schedule with --pet",
	Args:  cobra.NoArgs,
	RunE:  runFeedingList,
}

var feedingAddPetCmd = &cobra.Command{
	Use:   "add-pet",
	Short: "Add a pet",
	Args:  cobra.NoArgs,
	RunE:  runFeedingAddPet,
}

var feedingDeletePetCmd = &cobra.Command{
	Use:   "delete-pet <pet#>",
	Short: "Delete a pet together with its feeding schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedingDeletePet,
}

var feedingAddScheduleCmd = &cobra.Command{
	Use:   "add-schedule <pet#>",
	Short: "Add a feeding time to a pet",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedingAddSchedule,
}

var feedingDeleteScheduleCmd = &cobra.Command{
	Use:   "delete-schedule <pet#> <schedule#>",
	Short: "Remove a feeding time from a pet",
	Args:  cobra.ExactArgs(2),
	RunE:  runFeedingDeleteSchedule,
}

func init() {
	feedingListCmd.Flags().BoolVar(&feedingListFull, "full", false, "Include each pet's feeding schedule")
	feedingListCmd.Flags().IntVar(&feedingListPet, "pet", 0, "Show the feeding schedule of pet number N")

	feedingAddPetCmd.Flags().StringVar(&petName, "name", "", "Pet name")
	feedingAddPetCmd.Flags().StringVar(&petAge, "age", "", "Age in years (1-100)")
	feedingAddPetCmd.Flags().StringVar(&petWeight, "weight", "", "Weight in kg")

	feedingAddScheduleCmd.Flags().StringVar(&scheduleTime, "time", "", "Feeding time (HH:MM)")
	feedingAddScheduleCmd.Flags().StringVar(&scheduleFood, "food", "", "Food")
	feedingAddScheduleCmd.Flags().StringVar(&scheduleAmount, "amount", "", "Amount in kg")

	feedingCmd.AddCommand(feedingListCmd)
	feedingCmd.AddCommand(feedingAddPetCmd)
	feedingCmd.AddCommand(feedingDeletePetCmd)
	feedingCmd.AddCommand(feedingAddScheduleCmd)
	feedingCmd.AddCommand(feedingDeleteScheduleCmd)
}

func runFeedingList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := storage.OpenFeedingStore(cfg.FeedingPath())

	if feedingListPet > 0 {
		p, err := store.Pet(feedingListPet - 1)
		if err != nil {
			return storeErr(err)
		}
		fmt.Fprintln(out, p.Info())
		if len(p.Schedules) == 0 {
			fmt.Fprintln(out, "No feeding schedule.")
			return nil
		}
		for i, sc := range p.Schedules {
			fmt.Fprintf(out, "  %d. %s\n", i+1, sc.Row())
		}
		return nil
	}

	pets := store.Pets()
	if len(pets) == 0 {
		fmt.Fprintln(out, "No pets found.")
		return nil
	}
	for i, p := range pets {
		if feedingListFull {
			fmt.Fprintf(out, "%d. %s\n", i+1, p.FullInfo())
			continue
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, p.Info())
	}
	return nil
}

func runFeedingAddPet(cmd *cobra.Command, args []string) error {
	p, err := validate.Pet(petName, petAge, petWeight)
	if err != nil {
		return userError(err)
	}
	store := storage.OpenFeedingStore(cfg.FeedingPath())
	store.AddPet(p)
	if err := store.Save(); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added pet: %s\n", p.Info())
	return nil
}

func runFeedingDeletePet(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0], "pet")
	if err != nil {
		return err
	}
	store := storage.OpenFeedingStore(cfg.FeedingPath())
	p, err := store.DeletePet(idx)
	if err != nil {
		return storeErr(err)
	}
	if err := store.Save(); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted pet %q and %d feeding time(s).\n", p.Name, len(p.Schedules))
	return nil
}

func runFeedingAddSchedule(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0], "pet")
	if err != nil {
		return err
	}
	store := storage.OpenFeedingStore(cfg.FeedingPath())
	// A missing pet is reported before the schedule fields are checked.
	if _, err := store.Pet(idx); err != nil {
		return storeErr(err)
	}
	sc, err := validate.Schedule(scheduleTime, scheduleFood, scheduleAmount)
	if err != nil {
		return userError(err)
	}
	if err := store.AddSchedule(idx, sc); err != nil {
		return storeErr(err)
	}
	if err := store.Save(); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added feeding time: %s\n", sc.Row())
	return nil
}

func runFeedingDeleteSchedule(cmd *cobra.Command, args []string) error {
	petIdx, err := parseIndex(args[0], "pet")
	if err != nil {
		return err
	}
	idx, err := parseIndex(args[1], "schedule")
	if err != nil {
		return err
	}
	store := storage.OpenFeedingStore(cfg.FeedingPath())
	sc, err := store.DeleteSchedule(petIdx, idx)
	if err != nil {
		return storeErr(err)
	}
	if err := store.Save(); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed feeding time: %s\n", sc.Row())
	return nil
}
