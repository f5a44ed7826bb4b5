package cli

// usageText is printed for -h/--help in place of cobra's generated help
const usageText = `
  ue4-rocket-build: Rocket build system for UE4 Plugins

  Usage: ue4rb -U [Path to .uplugin file]

  Options:

    -h, --help                     Prints help information
    -U, --uplugin <path>           Path to .uplugin file
        --debug                    Prints diagnostic logs to stderr
        --version                  Prints version information

  Arguments after -- are passed on to RunUAT BuildPlugin.
`
