package commands

import (
	"fmt"
	"os"

	"github.com/agiangrant/esthetic"
)

// Init implements 'esthetic init': write the default configuration to
// esthetic.toml in the working directory.
func Init(args []string) error {
	fs, logLevel := newFlagSet("init")
	force := fs.Bool("force", false, "overwrite an existing esthetic.toml")
	locale := fs.String("locale", "", "locale for generated trigger text (en, de, fr)")
	if err := parse(fs, logLevel, args); err != nil {
		return err
	}

	if _, err := os.Stat(ProjectFile); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", ProjectFile)
	}

	config := esthetic.DefaultConfig()
	if *locale != "" {
		config.Locale = *locale
	}
	if err := esthetic.SaveConfig(ProjectFile, config); err != nil {
		return err
	}

	fmt.Printf("  ✓ Created %s\n", ProjectFile)
	return nil
}
