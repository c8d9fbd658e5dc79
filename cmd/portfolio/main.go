// @title                       Portfolio API
// @version                     1.0
// @description                 Portfolio content, contact inbox and learning tracker.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
