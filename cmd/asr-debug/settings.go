package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wippyai/asr-runtime/asr"
	"github.com/wippyai/asr-runtime/session"
	"github.com/wippyai/asr-runtime/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings <script.wasm>",
	Short: "List the user settings a script declares",
	Long: `Load a script, run its initialization and list the settings it
declares with their effective values. --config and --set apply the same
overrides as the run command and reports overrides that match no declared
setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettings,
}

var (
	flagSettingsConfig string
	flagSettingsSet    []string
)

func init() {
	settingsCmd.Flags().StringVar(&flagSettingsConfig, "config", "", "Path to a run file (YAML)")
	settingsCmd.Flags().StringArrayVar(&flagSettingsSet, "set", nil, "Override a setting, key=bool (repeatable)")
}

func runSettings(cmd *cobra.Command, args []string) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	installLogger(log)

	rf, err := loadRunFile(flagSettingsConfig)
	if err != nil {
		return err
	}
	store, err := buildStore(rf, flagSettingsSet)
	if err != nil {
		return err
	}

	// The session takes the store.
	overrides := store.Clone()

	ctx := context.Background()
	cfg := &asr.Config{MemoryLimitPages: rf.MemoryLimitPages, Logger: log.Named("engine")}
	sess, err := session.Open(ctx, args[0], store, newDebugHost(rf.Segments), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	return printSettings(os.Stdout, sess, overrides)
}

// printSettings lists the declared settings, then the keys of overrides
// that no declared setting uses. overrides may be nil.
func printSettings(out io.Writer, sess *session.Session, overrides *settings.Store) error {
	list := sess.UserSettings()
	if len(list) == 0 {
		if _, err := fmt.Fprintln(out, "No user settings declared."); err != nil {
			return err
		}
		return printUnused(out, list, overrides)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tTYPE\tVALUE\tDESCRIPTION")
	for i, s := range list {
		typ, value := "other", ""
		switch k := s.Kind.(type) {
		case settings.BoolKind:
			typ = "bool"
			v, _ := sess.UserSettingBool(i)
			value = fmt.Sprint(v)
			if v != k.Default {
				value += " (default " + fmt.Sprint(k.Default) + ")"
			}
		case settings.TitleKind:
			typ = fmt.Sprintf("title/%d", k.HeadingLevel)
		}
		desc := s.Description
		if s.Tooltip != "" {
			desc += " - " + s.Tooltip
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, s.Key, typ, value, desc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return printUnused(out, list, overrides)
}

func printUnused(out io.Writer, list []settings.UserSetting, overrides *settings.Store) error {
	if overrides == nil {
		return nil
	}
	var unused []string
	for _, k := range overrides.Keys() {
		declared := slices.ContainsFunc(list, func(s settings.UserSetting) bool { return s.Key == k })
		if !declared {
			unused = append(unused, k)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(out, "\nOverrides matching no setting: %s\n", strings.Join(unused, ", "))
	return err
}
