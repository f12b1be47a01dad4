// Package cli содержит общие для бинарников помощники поверх cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version — версия filedrop.
const Version = "0.4.0"

// Mainify оборачивает точку входа, возвращающую ошибку, в стандартную для cobra.
// Так deferred-очистка внутри entry успевает выполниться до завершения процесса.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// Error печатает ошибку в stderr.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal печатает ошибку и завершает процесс с кодом 1.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
