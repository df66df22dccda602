package main

import (
	"context"
	"fmt"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/seed"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users, posts and tags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
			if err := database.ApplySchema(ctx, db, cfg); err != nil {
				return fmt.Errorf("schema setup failed: %w", err)
			}
			res, err := seed.NewSeeder(db, seedOpts).Run(ctx)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d tags, %d post tags\n",
				res.Users, res.Posts, res.Tags, res.Links)
			return nil
		})
	},
}

func init() {
	flags := seedCmd.Flags()
	flags.IntVar(&seedOpts.NumUsers, "users", seedOpts.NumUsers, "number of users to create")
	flags.IntVar(&seedOpts.PostsPerUser, "posts-per-user", seedOpts.PostsPerUser, "posts written by each user")
	flags.IntVar(&seedOpts.NumTags, "tags", seedOpts.NumTags, "number of tags to create")
	flags.IntVar(&seedOpts.MaxTagsPerPost, "max-tags-per-post", seedOpts.MaxTagsPerPost, "upper bound of tags attached to each post")
	flags.BoolVar(&seedOpts.Clean, "clean", seedOpts.Clean, "delete existing rows before seeding")
	flags.Int64Var(&seedOpts.RandSeed, "rand-seed", 0, "seed for reproducible data (0 picks one)")
}
