package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCmd checks a local file against the registry.
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a certificate file",
	Long: `Check whether a file matches a certificate registered with the server.

The file is uploaded and fingerprinted server-side; a match returns the
registered certificate details. Any modification to the file produces a
non-match.

Example:
  certreg verify ./certificate.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	var resp struct {
		Matched     bool `json:"matched"`
		Certificate *struct {
			CertificateID     string `json:"certificate_id"`
			StudentIdentifier string `json:"student_identifier"`
			DegreeName        string `json:"degree_name"`
			UniversityName    string `json:"university_name"`
			IssuedAt          string `json:"issued_at"`
		} `json:"certificate"`
	}

	endpoint := serverURL + "/api/v1/verifications"
	if err := postFile(cmd.Context(), endpoint, args[0], nil, &resp); err != nil {
		return err
	}

	if !resp.Matched {
		fmt.Fprintln(cmd.OutOrStdout(), "no match: file is not a registered certificate")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "match\n  certificate_id: %s\n  student_identifier: %s\n  degree: %s\n  university: %s\n  issued_at: %s\n",
		resp.Certificate.CertificateID,
		resp.Certificate.StudentIdentifier,
		resp.Certificate.DegreeName,
		resp.Certificate.UniversityName,
		resp.Certificate.IssuedAt)
	return nil
}
