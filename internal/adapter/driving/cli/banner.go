package cli

import (
	"github.com/pterm/pterm"

	"github.com/dysin/market-insights-go/pkg/version"
)

const bannerArt = `
  __  __            _        _     ___         _      _   _
 |  \/  | __ _ _ __| | _____| |_  |_ _|_ __  ___(_) __ _| |__ | |_ ___
 | |\/| |/ _' | '__| |/ / _ \ __|  | || '_ \/ __| |/ _' | '_ \| __/ __|
 | |  | | (_| | |  |   <  __/ |_   | || | | \__ \ | (_| | | | | |_\__ \
 |_|  |_|\__,_|_|  |_|\_\___|\__| |___|_| |_|___/_|\__, |_| |_|\__|___/
                                                   |___/
`

func printBanner() {
	pterm.DefaultBasicText.Println(pterm.LightCyan(bannerArt))
	pterm.DefaultBasicText.Println(pterm.Gray("  " + version.String()))
	pterm.Println()
}
