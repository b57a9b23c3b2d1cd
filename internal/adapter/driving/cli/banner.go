package cli

import (
	"fmt"

	"github.com/diillson/commerce-analytics-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
       ___                                        _             _      _   _
      / __|___ _ __  _ __  ___ _ _ __ ___        /_\  _ _  __ _| |_  _| |_(_)__ ___
     | (__/ _ \ '  \| '  \/ -_) '_/ _/ -_)      / _ \| ' \/ _' | | || |  _| / _(_-<
      \___\___/_|_|_|_|_|_\___|_| \__\___|     /_/ \_\_||_\__,_|_|\_, |\__|_\__/__/
                                                                  |__/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Commerce Analytics CLI (v%s)", formattedVersion)))
}
