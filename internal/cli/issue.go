package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	issueCertificateID     string
	issueStudentIdentifier string
	issueStudentFullName   string
	issueGender            string
	issueDateOfBirth       string
	issueDegreeName        string
	issueGraduationDate    string
	issueUniversityName    string
)

// issueCmd registers a certificate file with a running server.
var issueCmd = &cobra.Command{
	Use:   "issue <file>",
	Short: "Issue a certificate",
	Long: `Register an academic certificate with the registry server.

The file is uploaded, fingerprinted and pinned server-side; on success the
command prints the content address and fingerprint under which the
certificate was registered.

Example:
  certreg issue ./certificate.pdf \
    --certificate-id cert-1 \
    --student-identifier S1 \
    --student-name "Ada Lovelace" \
    --degree "BSc Mathematics" \
    --university "University of Example"`,
	Args: cobra.ExactArgs(1),
	RunE: runIssue,
}

func init() {
	issueCmd.Flags().StringVar(&issueCertificateID, "certificate-id", "", "unique certificate identifier (required)")
	issueCmd.Flags().StringVar(&issueStudentIdentifier, "student-identifier", "", "student natural key (required)")
	issueCmd.Flags().StringVar(&issueStudentFullName, "student-name", "", "student full name (required)")
	issueCmd.Flags().StringVar(&issueGender, "gender", "", "student gender")
	issueCmd.Flags().StringVar(&issueDateOfBirth, "date-of-birth", "", "student date of birth (YYYY-MM-DD)")
	issueCmd.Flags().StringVar(&issueDegreeName, "degree", "", "degree name (required)")
	issueCmd.Flags().StringVar(&issueGraduationDate, "graduation-date", "", "graduation date (YYYY-MM-DD)")
	issueCmd.Flags().StringVar(&issueUniversityName, "university", "", "issuing university (required)")

	issueCmd.MarkFlagRequired("certificate-id")
	issueCmd.MarkFlagRequired("student-identifier")
	issueCmd.MarkFlagRequired("student-name")
	issueCmd.MarkFlagRequired("degree")
	issueCmd.MarkFlagRequired("university")
}

func runIssue(cmd *cobra.Command, args []string) error {
	fields := map[string]string{
		"certificateId":     issueCertificateID,
		"studentIdentifier": issueStudentIdentifier,
		"studentFullName":   issueStudentFullName,
		"gender":            issueGender,
		"dateOfBirth":       issueDateOfBirth,
		"degreeName":        issueDegreeName,
		"graduationDate":    issueGraduationDate,
		"universityName":    issueUniversityName,
	}

	var resp struct {
		CertificateID      string `json:"certificate_id"`
		ContentAddress     string `json:"content_address"`
		ContentFingerprint string `json:"content_fingerprint"`
		IssuedAt           string `json:"issued_at"`
	}

	endpoint := serverURL + "/api/v1/certificates"
	if err := postFile(cmd.Context(), endpoint, args[0], fields, &resp); err != nil {
		return err
	}

	appLogger.Info("certificate issued",
		slog.String("certificate_id", resp.CertificateID),
		slog.String("content_address", resp.ContentAddress),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "issued %s\n  content_address: %s\n  content_fingerprint: %s\n  issued_at: %s\n",
		resp.CertificateID, resp.ContentAddress, resp.ContentFingerprint, resp.IssuedAt)
	return nil
}
