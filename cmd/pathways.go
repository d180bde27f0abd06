package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
)

var pathwaysCmd = &cobra.Command{
	Use:   "pathways",
	Short: "Inspect the signed-in user's saved pathways",
}

// rememberedUser returns the user of the durable session, if any.
func rememberedUser(cmd *cobra.Command, rt *runtime) (*session.User, error) {
	u, err := session.NewStore(rt.store.KVRepo(), rt.logger).Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("nobody is signed in; sign in from the app first")
	}
	return u, nil
}

var pathwaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved pathways",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		u, err := rememberedUser(cmd, rt)
		if err != nil {
			return err
		}
		if len(u.SavedPathways) == 0 {
			fmt.Printf("%s has no saved pathways.\n", u.Email)
			return nil
		}

		fmt.Printf("%-28s  %-10s  %s\n", "ID", "Saved", "Title")
		fmt.Println(strings.Repeat("─", 80))
		for _, p := range u.SavedPathways {
			saved := p.CreatedAt
			if len(saved) >= 10 {
				saved = saved[:10]
			}
			fmt.Printf("%-28s  %-10s  %s\n", truncate(p.ID, 28), saved, p.Title)
		}
		return nil
	},
}

var pathwaysExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a saved pathway as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		u, err := rememberedUser(cmd, rt)
		if err != nil {
			return err
		}
		var found *pathway.Pathway
		for i := range u.SavedPathways {
			if u.SavedPathways[i].ID == args[0] {
				found = &u.SavedPathways[i]
				break
			}
		}
		if found == nil {
			return fmt.Errorf("pathway %q is not saved for %s", args[0], u.Email)
		}

		catalog, err := i18n.Load(rt.logger)
		if err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
		tr := i18n.NewTranslator(catalog, i18n.NewLocale(rt.cfg.Locale))

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = rt.cfg.ExportDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		path := filepath.Join(dir, pathway.FileName(found))
		if err := os.WriteFile(path, []byte(pathway.Markdown(found, tr.T)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	pathwaysExportCmd.Flags().String("dir", "", "Output directory (overrides export.dir)")

	pathwaysCmd.AddCommand(pathwaysListCmd)
	pathwaysCmd.AddCommand(pathwaysExportCmd)
}
