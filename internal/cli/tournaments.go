package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VictorZP/halfs-app-sub001/internal/config"
	"github.com/VictorZP/halfs-app-sub001/internal/registry"
)

var (
	flagSetURL     string
	flagSetName    string
	flagSetActive  bool
	flagSetDisable bool
)

func newTournamentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournaments",
		Short: "Manage the tournament registry",
	}

	cmd.AddCommand(newTournamentsListCmd())
	cmd.AddCommand(newTournamentsAddCmd())
	cmd.AddCommand(newTournamentsUpdateCmd())
	cmd.AddCommand(newTournamentsRemoveCmd())

	return cmd
}

func openRegistry() (*registry.Registry, error) {
	cfg := config.Load()
	reg, err := registry.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening tournament registry: %w", err)
	}
	return reg, nil
}

func newTournamentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tournaments",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			tournaments, err := reg.All()
			if err != nil {
				return err
			}
			if len(tournaments) == 0 {
				fmt.Println("No tournaments stored.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACTIVE\tURL")
			for _, t := range tournaments {
				active := "yes"
				if !t.Active {
					active = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, active, t.URL)
			}
			return w.Flush()
		},
	}
}

func newTournamentsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			added, err := reg.Add(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added %q\n", added.Name)
			return nil
		},
	}
}

func newTournamentsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update a tournament's name, URL or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			var upd registry.Update
			if cmd.Flags().Changed("url") {
				upd.URL = &flagSetURL
			}
			if cmd.Flags().Changed("name") {
				upd.Name = &flagSetName
			}
			if cmd.Flags().Changed("enable") {
				on := true
				upd.Active = &on
			}
			if cmd.Flags().Changed("disable") {
				off := false
				upd.Active = &off
			}
			if upd.URL == nil && upd.Name == nil && upd.Active == nil {
				return fmt.Errorf("nothing to update; pass --url, --name, --enable or --disable")
			}

			updated, err := reg.Apply(args[0], upd)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %q\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSetURL, "url", "", "New listing page URL")
	cmd.Flags().StringVar(&flagSetName, "name", "", "New tournament name")
	cmd.Flags().BoolVar(&flagSetActive, "enable", false, "Include the tournament in scans")
	cmd.Flags().BoolVar(&flagSetDisable, "disable", false, "Exclude the tournament from scans")

	return cmd
}

func newTournamentsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %q\n", args[0])
			return nil
		},
	}
}
