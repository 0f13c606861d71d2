package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testEmailTo string

var testEmailCmd = &cobra.Command{
	Use:   "send-test-email",
	Short: "Send the configuration-test email and exit",
	Long: `Send the configuration-test email through the primary email channel
(or the first enabled email channel) to verify relay or API credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		receipt, err := a.dispatcher.SendTestEmail(cmd.Context(), testEmailTo)
		if err != nil {
			return fmt.Errorf("send test email: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s (message id %q)\n", testEmailTo, receipt.MessageID)
		return nil
	},
}

func init() {
	testEmailCmd.Flags().StringVar(&testEmailTo, "to", "", "recipient address")
	_ = testEmailCmd.MarkFlagRequired("to")
}
