package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "siteadmin",
		Short: "Admin tool for the cleancode.uk site",
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Theme cookie signing keys",
	}
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new cookie hash key (and optionally a block key)",
		RunE:  generateKeys,
	}
	generateCmd.Flags().BoolVar(&withBlockKey, "encrypt", false, "Also generate a block key so cookie values are encrypted")
	keysCmd.AddCommand(generateCmd)

	sitemapCmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Sitemap operations",
	}
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the sitemap the server would send",
		RunE:  printSitemap,
	}
	printCmd.Flags().StringVar(&sitemapBase, "base", "", "Base URL (default from config)")
	printCmd.Flags().Func("offset", "Render as of now plus this offset (e.g. 1d, -2w, 3h)", func(s string) error {
		d, err := parseOffset(s)
		if err != nil {
			return err
		}
		sitemapOffset = d
		return nil
	})
	sitemapCmd.AddCommand(printCmd)

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Theme preference operations",
	}
	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show how a stored preference resolves, without a browser",
		RunE:  resolveTheme,
	}
	resolveCmd.Flags().StringVar(&themeVariant, "variant", "full", "Theme variant: full or dark-only")
	resolveCmd.Flags().StringVar(&themeStored, "stored", "", "Persisted lg-theme value to start from")
	resolveCmd.Flags().StringVar(&themeSet, "set", "", "Mode to set after init")
	resolveCmd.Flags().StringVar(&themeOS, "os", "light", "OS preference: light or dark")
	resolveCmd.Flags().BoolVar(&themeFlip, "flip", false, "Flip the OS preference at the end")
	themeCmd.AddCommand(resolveCmd)

	rootCmd.AddCommand(keysCmd, sitemapCmd, themeCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
