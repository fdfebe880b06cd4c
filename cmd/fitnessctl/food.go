package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/nutrition"
)

type foodOptions struct {
	baseURL string
	dbPath  string
	offline bool
	asJSON  bool
	limit   int
}

func newFoodCmd(_ *rootOptions) *cobra.Command {
	opts := &foodOptions{}

	foodCmd := &cobra.Command{
		Use:   "food",
		Short: "Lookup and search normalized food items",
	}
	foodCmd.PersistentFlags().StringVar(&opts.baseURL, "off-url", nutrition.DefaultBaseURL, "Open Food Facts base URL")
	foodCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to a SQLite file caching fetched items")
	foodCmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "read from the SQLite cache only")
	foodCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print items as JSON")

	lookupCmd := &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Lookup a food item by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(store *nutrition.LocalStore) error {
				barcode := strings.TrimSpace(args[0])

				var item *nutrition.FoodItem
				var err error
				if opts.offline {
					item, err = store.ByBarcode(cmd.Context(), barcode)
				} else {
					item, err = opts.service().Lookup(cmd.Context(), uuid.Nil, barcode)
				}
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("no food item found for barcode %s", barcode)
				}
				if err != nil {
					return err
				}

				if store != nil && !opts.offline {
					if err := store.Save(cmd.Context(), *item, time.Now()); err != nil {
						return fmt.Errorf("cache item: %w", err)
					}
				}
				return opts.print(cmd.OutOrStdout(), []nutrition.FoodItem{*item})
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search food items by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(store *nutrition.LocalStore) error {
				query := strings.Join(args, " ")

				var items []nutrition.FoodItem
				var err error
				if opts.offline {
					items, err = store.Search(cmd.Context(), query, opts.limit)
				} else {
					items, err = opts.service().Search(cmd.Context(), query, opts.limit)
				}
				if err != nil {
					return err
				}

				if store != nil && !opts.offline {
					now := time.Now()
					for _, item := range items {
						if err := store.Save(cmd.Context(), item, now); err != nil {
							return fmt.Errorf("cache item: %w", err)
						}
					}
				}
				return opts.print(cmd.OutOrStdout(), items)
			})
		},
	}
	searchCmd.Flags().IntVar(&opts.limit, "limit", nutrition.DefaultSearchLimit, "max number of items")

	foodCmd.AddCommand(lookupCmd, searchCmd)
	return foodCmd
}

func (o *foodOptions) service() *nutrition.Service {
	client := nutrition.NewClient(nutrition.ClientParams{BaseURL: o.baseURL})
	return nutrition.NewService(client, nil, nil)
}

// withStore opens the SQLite cache when --db is set. The store passed to run
// is nil otherwise.
func (o *foodOptions) withStore(run func(store *nutrition.LocalStore) error) error {
	if o.dbPath == "" {
		if o.offline {
			return errors.New("--offline requires --db")
		}
		return run(nil)
	}

	store, err := nutrition.OpenLocalStore(o.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return run(store)
}

func (o *foodOptions) print(w io.Writer, items []nutrition.FoodItem) error {
	if o.asJSON {
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal food items json: %w", err)
		}
		fmt.Fprintln(w, string(b))
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "no food items found")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(w, "%s", item.Name)
		if item.Brand != "" {
			fmt.Fprintf(w, " (%s)", item.Brand)
		}
		if item.Barcode != nil {
			fmt.Fprintf(w, " [%s]", *item.Barcode)
		}
		fmt.Fprintf(w, "\n  calories: %.2f kcal", item.Calories)
		if item.ServingSizeG != nil {
			fmt.Fprintf(w, ", serving: %.2f g", *item.ServingSizeG)
		}
		fmt.Fprintf(w, "\n  protein: %s, carbs: %s, fat: %s\n", grams(item.ProteinG), grams(item.CarbsG), grams(item.FatG))
	}
	return nil
}

func grams(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2fg", *v)
}
