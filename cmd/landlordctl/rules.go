package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/woodhall335/landlord-heaven/compliance"
	"github.com/woodhall335/landlord-heaven/internal/logger"
)

// rulePack is the on-disk shape of a compliance rule pack.
type rulePack struct {
	DocumentType string `yaml:"document_type"`
	Rules        []struct {
		Name       string `yaml:"name"`
		Expression string `yaml:"expression"`
		Severity   string `yaml:"severity"`
		Message    string `yaml:"message"`
		Active     bool   `yaml:"active"`
	} `yaml:"rules"`
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage compliance rule packs",
}

var rulesSeedDir string

var rulesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load rule packs from YAML into the database",
	Long: `Reads every YAML rule pack under the pack directory, compiles each
expression and inserts the rules for its document type. Rules that fail to
compile abort the pack they belong to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("database URL is required, use --database or DATABASE_URL")
		}

		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		paths, err := doublestar.FilepathGlob(filepath.Join(rulesSeedDir, "**", "*.{yaml,yml}"))
		if err != nil {
			return fmt.Errorf("failed to scan rule packs: %w", err)
		}
		sort.Strings(paths)

		if len(paths) == 0 {
			return fmt.Errorf("no rule packs found under %s", rulesSeedDir)
		}

		for _, path := range paths {
			if err := seedPack(db, path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func seedPack(db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var pack rulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("failed to parse pack: %w", err)
	}
	if pack.DocumentType == "" {
		return fmt.Errorf("pack has no document_type")
	}

	store := compliance.NewPostgresRuleStore(db, pack.DocumentType)
	engine, err := compliance.NewEngine(store)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	seeded := 0
	for _, r := range pack.Rules {
		now := time.Now()
		rule := &compliance.Rule{
			ID:           uuid.NewString(),
			Name:         r.Name,
			DocumentType: pack.DocumentType,
			Expression:   r.Expression,
			Severity:     r.Severity,
			Message:      r.Message,
			Active:       r.Active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if rule.Severity == "" {
			rule.Severity = compliance.SeverityError
		}

		if err := engine.AddRule(rule); err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		seeded++
	}

	logger.Info("seeded rule pack",
		"pack", path,
		"document_type", pack.DocumentType,
		"rules", seeded)
	return nil
}

func init() {
	rulesSeedCmd.Flags().StringVar(&rulesSeedDir, "dir", "rulepacks", "Directory containing rule pack YAML files")
	rulesCmd.AddCommand(rulesSeedCmd)
}
