package internal_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/payment-processor/internal"
)

var _ = Describe("AppError", func() {
	It("recognizes wrapped transport errors", func() {
		cause := fmt.Errorf("i/o timeout")
		err := fmt.Errorf("charging: %w", internal.NewTransportError("charge request failed", cause))

		Expect(internal.IsTransportError(err)).To(BeTrue())
		Expect(internal.IsConfigurationError(err)).To(BeFalse())
		Expect(err).To(MatchError(ContainSubstring("charge request failed: i/o timeout")))
		Expect(err).To(MatchError(cause))
	})

	It("recognizes configuration errors", func() {
		err := internal.NewConfigurationError("PAYMENT_API_KEY environment variable is required", internal.ErrCodeMissingAPIKey)

		Expect(internal.IsConfigurationError(err)).To(BeTrue())
		Expect(internal.IsTransportError(err)).To(BeFalse())
	})

	It("does not treat plain errors as app errors", func() {
		_, ok := internal.IsAppError(fmt.Errorf("plain"))
		Expect(ok).To(BeFalse())
		Expect(internal.IsTransportError(nil)).To(BeFalse())
	})

	It("hides the cause from the JSON body", func() {
		err := internal.NewTransportError("charge request failed", fmt.Errorf("secret upstream detail"))

		status, body := err.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadGateway))

		raw, marshalErr := json.Marshal(body)
		Expect(marshalErr).ToNot(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"code":"GATEWAY_TRANSPORT_FAILED"`))
		Expect(string(raw)).ToNot(ContainSubstring("secret upstream detail"))
	})
})
