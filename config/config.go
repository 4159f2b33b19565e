// Package config handles the server's settings.  sited and siteadmin both
// read it.
//
// Settings come from ~/.cleancode.yaml, overridden by CLEANCODE_* environment
// variables.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cleancode-uk/site/sitemap"
	"github.com/cleancode-uk/site/theme"
)

const envPrefix = "CLEANCODE"

// Init loads the config file and environment into viper.  A missing config
// file is fine.
func Init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".cleancode")
	viper.AddConfigPath(home)
	setDefaults(viper.GetViper())
	err = viper.ReadInConfig()
	if err != nil {
		log.Printf("viper can't read config file: %v", err)
	}
	log.Printf("Using listen address: %s", ListenAddress())
	log.Printf("Using base URL: %s", BaseURL())
	log.Printf("Using theme variant: %s", viper.GetString("theme_variant"))
}

func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("listen_address", ":8080")
	v.SetDefault("base_url", sitemap.DefaultBase)
	v.SetDefault("sitemap_routes", sitemap.DefaultRoutes)
	v.SetDefault("contact_path", sitemap.DefaultContactPath)
	v.SetDefault("theme_variant", string(theme.VariantFull))
	v.SetDefault("cookie_domain", "")
	v.SetDefault("cookie_hash_key64", "")
	v.SetDefault("cookie_block_key64", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("enable_caching", true)
	v.SetDefault("static_max_age", 24*time.Hour)
	v.SetDefault("tarpit_step", 11*time.Millisecond)
	v.SetDefault("tarpit_max_delay", 3*time.Second)
}

func ListenAddress() string {
	return viper.GetString("listen_address")
}

func BaseURL() string {
	return viper.GetString("base_url")
}

// SitemapRoutes accepts either a YAML list or a comma-separated env value.
func SitemapRoutes() []string {
	return splitList(viper.GetStringSlice("sitemap_routes"))
}

func ContactPath() string {
	return viper.GetString("contact_path")
}

// ThemeVariant fails on values theme.ParseVariant doesn't know.
func ThemeVariant() (theme.Variant, error) {
	return theme.ParseVariant(viper.GetString("theme_variant"))
}

func CookieDomain() string {
	return viper.GetString("cookie_domain")
}

func CookieHashKey64() string {
	return viper.GetString("cookie_hash_key64")
}

func CookieBlockKey64() string {
	return viper.GetString("cookie_block_key64")
}

func SecureCookies() bool {
	return viper.GetBool("secure_cookies")
}

func AllowedOrigins() []string {
	return splitList(viper.GetStringSlice("allowed_origins"))
}

func EnableCaching() bool {
	return viper.GetBool("enable_caching")
}

func StaticMaxAge() time.Duration {
	return viper.GetDuration("static_max_age")
}

// TarpitStep is how much slower each repeat scanner hit gets.
func TarpitStep() time.Duration {
	return viper.GetDuration("tarpit_step")
}

func TarpitMaxDelay() time.Duration {
	return viper.GetDuration("tarpit_max_delay")
}

// splitList flattens "a,b" entries, which is how a list arrives from the
// environment.
func splitList(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
