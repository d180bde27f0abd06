package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/account"
	"github.com/abhisek/skillnav/internal/app"
	"github.com/abhisek/skillnav/internal/chat"
	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/llm"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/share"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, link string) error {
	ctx := cmd.Context()
	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, logger, st := rt.cfg, rt.logger, rt.store

	catalog, err := i18n.Load(logger)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	deps := navigator.Deps{
		Translator: i18n.NewTranslator(catalog, i18n.NewLocale(cfg.Locale)),
		Sessions:   session.NewStore(st.KVRepo(), logger),
		Accounts:   account.NewRegistry(st.AccountRepo(), logger),
		Feedback:   st.EventRepo(),
		Logger:     logger,
	}

	if cfg.Share.BaseURL != "" {
		remote := share.NewHTTPResolver(cfg.Share.BaseURL, nil)
		deps.Resolver, deps.Publisher = remote, remote
		deps.ShareBase = cfg.Share.BaseURL
	} else {
		local := share.NewStoreResolver(st.SharedPathwayRepo())
		deps.Resolver, deps.Publisher = local, local
		deps.ShareBase = share.BaseForListen(cfg.Share.Listen)
	}
	if id, _ := cmd.Flags().GetString("pathway"); id != "" {
		link = share.ShareLink(deps.ShareBase, id)
	}
	deps.Location = share.ParseLocation(link)

	llmCfg, ok := cfg.LLMProvider()
	if !ok {
		logger.Warn("no LLM provider configured, AI features are unavailable")
		fmt.Fprintln(os.Stderr, "LLM provider not configured: AI features will be unavailable.")
	} else {
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger)
		if err != nil {
			logger.Error("init LLM provider", zap.String("provider", llmCfg.Provider), zap.Error(err))
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		} else {
			logger.Info("LLM provider ready", zap.String("provider", llmCfg.Provider))
			deps.Pathways = pathway.NewGenerator(provider, pathway.DefaultConfig())
			deps.Exams = exam.NewGenerator(provider, exam.DefaultConfig())
			deps.Assistant = chat.NewAssistant(provider, chat.DefaultConfig())
		}
	}

	env := &screen.Env{
		Ctx:       ctx,
		Ctrl:      navigator.New(deps),
		ExportDir: cfg.ExportDir(),
	}
	return app.Run(env)
}
