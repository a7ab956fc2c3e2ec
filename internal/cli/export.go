package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-picker/backend/internal/catalog"
	"github.com/pageza/recipe-picker/backend/internal/database"
	"github.com/pageza/recipe-picker/backend/internal/service"
)

func newExportCommand(v *viper.Viper) *cobra.Command {
	var expires time.Duration
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish every stored recipe as a catalog snapshot in S3",
		Long: `Export reads all recipes from the database, writes them as one JSON
object to the configured bucket and prints a presigned download URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := database.New(databaseConfig(v))
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			s3cfg, err := s3Config(ctx, v)
			if err != nil {
				return err
			}
			c := catalog.FromConfig(s3cfg)

			n, err := c.Publish(ctx, service.NewRecipeService(db, nil, nil))
			if err != nil {
				return err
			}
			url, err := s3cfg.GeneratePresignedURL(ctx, c.Key(), expires)
			if err != nil {
				return fmt.Errorf("presigning catalog URL: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d recipe(s) to s3://%s/%s\n", n, s3cfg.BucketName, s3cfg.CatalogKey)
			fmt.Fprintf(out, "Download (valid %s): %s\n", expires, url)
			return nil
		},
	}
	cmd.Flags().DurationVar(&expires, "expires", time.Hour, "lifetime of the presigned download URL")
	return cmd
}
