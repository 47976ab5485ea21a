package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show version information.",
		Usage: "apppermission version",
		Run: func([]string) error {
			printVersion()
			return nil
		},
	})
}
