package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/apppermission/pkg/permission"
)

// defaultTierSDKs straddle both thresholds.
var defaultTierSDKs = []int{
	permission.SDKRuntimePermissions - 1,
	permission.SDKRuntimePermissions,
	permission.SDKBackgroundLocation - 1,
	permission.SDKBackgroundLocation,
}

func init() {
	RegisterCommand(&Command{
		Name:  "tiers",
		Short: "Show the permission tier of SDK levels",
		Long: `Show the permission tier of each Android SDK level and the location
permissions requested on it.

Without arguments the levels on either side of each threshold are shown.`,
		Usage: "apppermission tiers [sdk...]",
		Run:   runTiers,
	})
}

func runTiers(args []string) error {
	sdks := defaultTierSDKs
	if len(args) > 0 {
		sdks = make([]int, 0, len(args))
		for _, arg := range args {
			sdk, err := strconv.Atoi(arg)
			if err != nil || sdk <= 0 {
				return fmt.Errorf("invalid SDK level %q", arg)
			}
			sdks = append(sdks, sdk)
		}
	}

	fmt.Fprintf(stdout, "%-5s %-27s %s\n", "SDK", "TIER", "LOCATION")
	for _, sdk := range sdks {
		tier := permission.TierForSDK(sdk)
		location := "(install time)"
		if tier.EnforcesRuntime() {
			location = fmt.Sprint(permission.LocationSpec(tier).Identifiers)
		}
		fmt.Fprintf(stdout, "%-5d %-27s %s\n", sdk, tier, location)
	}
	return nil
}
