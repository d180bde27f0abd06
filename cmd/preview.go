package cmd

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillnav/internal/config"
	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/llm"
	"github.com/abhisek/skillnav/internal/logging"
	"github.com/abhisek/skillnav/internal/pathway"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview an AI-generated pathway for a profile (no database)",
	Long: `Generate a pathway for the given profile and print it as Markdown.

With --exam, also generate a study plan for that exam and walk through its
practice questions. This is a stateless developer tool: nothing is saved and
no LLM events are recorded.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("aspiration", "", "Career aspiration, e.g. \"Welder\" (required)")
	previewCmd.Flags().String("background", pathway.AcademicBackgrounds[0], "Academic background")
	previewCmd.Flags().StringSlice("skill", nil, "Prior skill (repeatable)")
	previewCmd.Flags().String("pace", pathway.LearningPaceOptions[0], "Learning pace")
	previewCmd.Flags().String("location", "", "Preferred location")
	previewCmd.Flags().String("language", "en", "Response language code")
	previewCmd.Flags().String("exam", "", "Also plan for this exam key, e.g. SSC_CGL")
	_ = previewCmd.MarkFlagRequired("aspiration")

	rootCmd.AddCommand(previewCmd)
}

func previewProfile(cmd *cobra.Command) (pathway.Profile, error) {
	p := pathway.DefaultProfile("en")
	p.CareerAspiration, _ = cmd.Flags().GetString("aspiration")
	p.AcademicBackground, _ = cmd.Flags().GetString("background")
	p.PriorSkills, _ = cmd.Flags().GetStringSlice("skill")
	p.LearningPace, _ = cmd.Flags().GetString("pace")
	p.PreferredLocation, _ = cmd.Flags().GetString("location")
	p.PreferredLanguage, _ = cmd.Flags().GetString("language")

	if !slices.Contains(pathway.AcademicBackgrounds, p.AcademicBackground) {
		return p, fmt.Errorf("unknown background %q: choose one of %s", p.AcademicBackground, strings.Join(pathway.AcademicBackgrounds, ", "))
	}
	if !slices.Contains(pathway.LearningPaceOptions, p.LearningPace) {
		return p, fmt.Errorf("unknown pace %q: choose one of %s", p.LearningPace, strings.Join(pathway.LearningPaceOptions, ", "))
	}
	if !i18n.IsSupported(p.PreferredLanguage) {
		return p, fmt.Errorf("unsupported language %q", p.PreferredLanguage)
	}
	return p, nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	profile, err := previewProfile(cmd)
	if err != nil {
		return err
	}
	var target *exam.Exam
	if key, _ := cmd.Flags().GetString("exam"); key != "" {
		e, ok := exam.Lookup(key)
		if !ok {
			var keys []string
			for _, e := range exam.Catalog {
				keys = append(keys, e.Key)
			}
			return fmt.Errorf("unknown exam %q: choose one of %s", key, strings.Join(keys, ", "))
		}
		target = &e
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
	if err != nil {
		return err
	}
	logStderr, _ := cmd.Flags().GetBool("log-stderr")
	logger, closeLog, err := logging.New(logging.Config{Level: cfg.Log.Level, Stderr: logStderr})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	llmCfg, ok := cfg.LLMProvider()
	if !ok {
		return fmt.Errorf("LLM provider: no API key configured")
	}
	// No EventRepo: event logging is skipped.
	provider, err := llm.NewProvider(ctx, llmCfg, nil, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	catalog, err := i18n.Load(logger)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	tr := i18n.NewTranslator(catalog, i18n.NewLocale(profile.PreferredLanguage))

	fmt.Fprintf(os.Stderr, "Generating a pathway to become %s...\n", profile.CareerAspiration)
	p, err := pathway.NewGenerator(provider, pathway.DefaultConfig()).Generate(ctx, profile)
	if err != nil {
		return fmt.Errorf("generate pathway: %w", err)
	}
	fmt.Println(pathway.Markdown(p, tr.T))

	if target == nil {
		return nil
	}

	fmt.Fprintf(os.Stderr, "Generating a study plan for %s...\n", target.Name)
	plan, err := exam.NewGenerator(provider, exam.DefaultConfig()).Generate(ctx, profile, *target)
	if err != nil {
		return fmt.Errorf("generate study plan: %w", err)
	}
	fmt.Println(exam.Markdown(plan, tr.T))
	return practice(plan)
}

// practice walks through the plan's questions, revealing each answer after
// the learner has tried it.
func practice(plan *exam.Plan) error {
	if len(plan.PracticeQuestions) == 0 {
		return nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	var attempted int
	for i, q := range plan.PracticeQuestions {
		fmt.Printf("── Question %d/%d ──\n%s\n\nYour answer: ", i+1, len(plan.PracticeQuestions), q.Question)
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		if strings.TrimSpace(scanner.Text()) == "" {
			fmt.Println("(skipped)")
		} else {
			attempted++
		}
		fmt.Printf("Answer: %s\n\n", q.Answer)
	}
	fmt.Printf("── Attempted %d/%d ──\n", attempted, len(plan.PracticeQuestions))
	return scanner.Err()
}
