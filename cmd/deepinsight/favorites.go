package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/store"
)

func newFavoritesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage tracked funds",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	openStore := func() (*store.Store, error) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		return store.New(cfg.DBPath)
	}

	add := &cobra.Command{
		Use:   "add <fund-code> <fund-name>",
		Short: "Start tracking a fund",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.AddFavorite(cmd.Context(), args[0], args[1]); err != nil {
				if errors.Is(err, store.ErrDuplicateFavorite) {
					fmt.Printf("%s is already tracked\n", args[0])
					return nil
				}
				return err
			}
			fmt.Printf("tracking %s (%s)\n", args[1], args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <fund-code>",
		Short: "Stop tracking a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			removed, err := st.RemoveFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("%s was not tracked\n", args[0])
				return nil
			}
			fmt.Printf("stopped tracking %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tracked funds",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			favs, err := st.Favorites(cmd.Context())
			if err != nil {
				return err
			}
			if len(favs) == 0 {
				fmt.Println("no funds tracked")
				return nil
			}
			for _, f := range favs {
				fmt.Printf("%-8s %s\n", f.Code, f.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}
