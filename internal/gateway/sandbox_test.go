package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/gateway"
)

var _ = Describe("Sandbox", func() {
	var (
		sandboxServer *httptest.Server
		config        gateway.SandboxConfig
	)

	JustBeforeEach(func() {
		sandboxServer = httptest.NewServer(gateway.NewSandboxHandler(config, newTestLogger()))
	})

	AfterEach(func() {
		sandboxServer.Close()
		config = gateway.SandboxConfig{}
	})

	Context("with no simulated failures", func() {
		It("accepts charges from the real client", func() {
			client := gateway.NewClient(gateway.Config{APIKey: "sk_test", BaseURL: sandboxServer.URL}, newTestLogger())

			result, err := client.Charge(decimal.RequireFromString("12.34"), "tok_visa")

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(HavePrefix("txn_"))
			Expect(result.Status).To(Equal("succeeded"))
		})

		It("assigns a fresh id per charge", func() {
			client := gateway.NewClient(gateway.Config{APIKey: "sk_test", BaseURL: sandboxServer.URL}, newTestLogger())

			first, err := client.Charge(decimal.RequireFromString("1.00"), "tok_visa")
			Expect(err).ToNot(HaveOccurred())
			second, err := client.Charge(decimal.RequireFromString("1.00"), "tok_visa")
			Expect(err).ToNot(HaveOccurred())

			Expect(first.ID).ToNot(Equal(second.ID))
		})

		It("rejects requests without an api key", func() {
			client := gateway.NewClient(gateway.Config{BaseURL: sandboxServer.URL}, newTestLogger())

			_, err := client.Charge(decimal.RequireFromString("1.00"), "tok_visa")
			Expect(errors.IsTransportError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("status 401"))
		})

		It("rejects non-positive amounts", func() {
			client := gateway.NewClient(gateway.Config{APIKey: "sk_test", BaseURL: sandboxServer.URL}, newTestLogger())

			_, err := client.Charge(decimal.Zero, "tok_visa")
			Expect(err.Error()).To(ContainSubstring("status 400"))
		})

		It("rejects malformed bodies", func() {
			resp, err := http.Post(sandboxServer.URL+"/charges", "application/json", strings.NewReader(`{"amount":`))
			Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("when every charge is set to fail", func() {
		BeforeEach(func() {
			config.FailureRate = 1
		})

		It("answers with a bad gateway status", func() {
			client := gateway.NewClient(gateway.Config{APIKey: "sk_test", BaseURL: sandboxServer.URL}, newTestLogger())

			_, err := client.Charge(decimal.RequireFromString("10.00"), "tok_visa")
			Expect(errors.IsTransportError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("status 502"))
		})
	})
})
