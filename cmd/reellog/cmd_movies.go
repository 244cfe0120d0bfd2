package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reellog/reellog/client"
)

func newMoviesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Query the stored film diary",
	}
	cmd.AddCommand(newMoviesListCmd())
	cmd.AddCommand(newMoviesGetCmd())
	cmd.AddCommand(newMoviesSearchCmd())
	cmd.AddCommand(newMoviesByRatingCmd())
	cmd.AddCommand(newMoviesByYearCmd())
	cmd.AddCommand(newMoviesDeleteCmd())
	return cmd
}

func newMoviesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored movies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			movies, err := apiClient.Movies.List(context.Background())
			if err != nil {
				fatal("movies list", err)
			}
			printMovies(movies)
		},
	}
}

func newMoviesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <external-id>",
		Short: "Show one movie by its external ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			movie, err := apiClient.Movies.Get(context.Background(), args[0])
			if err != nil {
				fatal("movies get", err)
			}
			output(movie, movie.ExternalID)
		},
	}
}

func newMoviesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search movies by title",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			movies, err := apiClient.Movies.Search(context.Background(), args[0])
			if err != nil {
				fatal("movies search", err)
			}
			printMovies(movies)
		},
	}
}

func newMoviesByRatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-rating <min>",
		Short: "List movies rated at or above a threshold (0-5)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			min, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				fatal("movies by-rating", fmt.Errorf("min must be a number: %q", args[0]))
			}
			movies, err := apiClient.Movies.ByRating(context.Background(), min)
			if err != nil {
				fatal("movies by-rating", err)
			}
			printMovies(movies)
		},
	}
}

func newMoviesByYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-year <year>",
		Short: "List movies released in a year",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				fatal("movies by-year", fmt.Errorf("year must be an integer: %q", args[0]))
			}
			movies, err := apiClient.Movies.ByYear(context.Background(), year)
			if err != nil {
				fatal("movies by-year", err)
			}
			printMovies(movies)
		},
	}
}

func newMoviesDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every stored movie",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !yes && !confirm("Delete ALL stored movies?") {
				fmt.Println("aborted")
				return
			}
			if err := apiClient.Movies.DeleteAll(context.Background()); err != nil {
				fatal("movies delete", err)
			}
			fmt.Println("deleted")
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printMovies(movies []client.Movie) {
	if flagFmt != "table" {
		output(movies, strconv.Itoa(len(movies)))
		return
	}

	headers := []string{"ID", "TITLE", "YEAR", "RATING", "RUNTIME"}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rating := "-"
		if m.Rating != nil {
			rating = fmt.Sprintf("%.1f", *m.Rating)
		}
		runtime := "-"
		if m.RuntimeMinutes > 0 {
			runtime = fmt.Sprintf("%dm", m.RuntimeMinutes)
		}
		year := "-"
		if m.Year > 0 {
			year = strconv.Itoa(m.Year)
		}
		rows = append(rows, []string{m.ExternalID, m.Title, year, rating, runtime})
	}
	formatTable(headers, rows)
}
