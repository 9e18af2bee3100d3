package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagOverride maps a command flag onto the config key it overrides.
type flagOverride struct {
	Flag string
	Key  string
}

// applyConfigFlagOverrides copies explicitly set flags into v, so flags win
// over file and environment values.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, overrides ...flagOverride) {
	for _, o := range overrides {
		flag := cmd.Flags().Lookup(o.Flag)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, o.Flag, o.Key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
