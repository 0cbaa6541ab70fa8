package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"errornet/pkg/crash"
)

var _ = Describe("Commands", func() {
	var (
		fs  afero.Fs
		out *bytes.Buffer
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		out = &bytes.Buffer{}

		var err error
		reporter, err = crash.New(crash.DefaultConfig(),
			crash.WithFs(fs),
			crash.WithConsole(crash.NewConsole(out)),
			crash.WithDir("/opt/app"))
		Expect(err).NotTo(HaveOccurred())

		viper.Set("quiet", true)
		DeferCleanup(func() {
			viper.Set("quiet", false)
			viper.Set("print_title", false)
			viper.Set("report_to", "")
			viper.Set("error_log", true)
			showPath, showRaw = false, false
			interruptAfter = 0
			reporter = nil
		})
	})

	Describe("reporterConfig", func() {
		It("should default to logging without report target", func() {
			Expect(reporterConfig()).To(Equal(crash.DefaultConfig()))
		})

		It("should read all options from viper", func() {
			viper.Set("print_title", true)
			viper.Set("report_to", "  https://example.com/issues ")
			viper.Set("error_log", false)

			Expect(reporterConfig()).To(Equal(crash.Config{
				PrintTitle: true,
				ReportTo:   "https://example.com/issues",
				ErrorLog:   false,
			}))
		})
	})

	Describe("show", func() {
		BeforeEach(func() {
			showCmd.SetOut(out)
			DeferCleanup(func() { showCmd.SetOut(nil) })
		})

		It("should report a missing crash log without failing", func() {
			viper.Set("quiet", false)
			Expect(runShow(showCmd, nil)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("No crash report found"))
		})

		It("should print the raw report", func() {
			Expect(reporter.HandleUncaught("string", "boom", nil)).To(Succeed())
			out.Reset()
			showRaw = true

			Expect(runShow(showCmd, nil)).To(Succeed())
			report, err := reporter.LastReport()
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(Equal(report))
		})

		It("should frame the report by default", func() {
			Expect(reporter.HandleUncaught("string", "boom", nil)).To(Succeed())
			out.Reset()

			Expect(runShow(showCmd, nil)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Uncaught exception:"))
			Expect(out.String()).To(ContainSubstring("╭"))
		})

		It("should print only the path", func() {
			showPath = true
			Expect(runShow(showCmd, nil)).To(Succeed())
			Expect(out.String()).To(Equal(filepath.Join("/opt/app", crash.LogFileName) + "\n"))
		})
	})

	Describe("demo", func() {
		It("should return an error for the error fault", func() {
			err := runDemo(demoCmd, []string{"error"})
			Expect(err).To(MatchError(ContainSubstring("configuration could not be loaded")))
			Expect(crash.IsInterrupt(crash.KindOf(err), err)).To(BeFalse())
		})

		It("should return an interrupt after the given duration", func() {
			interruptAfter = 10 * time.Millisecond
			err := runDemo(demoCmd, []string{"interrupt"})
			Expect(errors.Is(err, crash.ErrInterrupt)).To(BeTrue())
		})

		It("should panic for the panic fault", func() {
			Expect(func() { _ = runDemo(demoCmd, []string{"panic"}) }).To(PanicWith(ContainSubstring("demo panic")))
		})

		It("should divide by zero", func() {
			Expect(func() { _ = runDemo(demoCmd, []string{"divide"}) }).To(Panic())
		})
	})

	Describe("reporter installation", func() {
		BeforeEach(func() {
			previous := crash.Installed()
			DeferCleanup(func() { crash.Install(previous) })
		})

		It("should install the reporter and print the banner once", func() {
			viper.Set("print_title", true)
			c := &cobra.Command{Use: "demo"}
			c.SetOut(out)

			Expect(installReporter(c, nil)).To(Succeed())

			Expect(crash.Installed()).To(BeIdenticalTo(reporter))
			Expect(reporter.Config().PrintTitle).To(BeTrue())
			Expect(out.String()).To(Equal(crash.Banner + "\n\n"))
		})

		It("should install the reporter for regular commands", func() {
			reporter = nil
			rootCmd.SetArgs([]string{"version"})
			rootCmd.SetOut(out)
			DeferCleanup(func() {
				rootCmd.SetArgs(nil)
				rootCmd.SetOut(nil)
			})

			Expect(rootCmd.Execute()).To(Succeed())

			Expect(reporter).NotTo(BeNil())
			Expect(crash.Installed()).To(BeIdenticalTo(reporter))
			Expect(out.String()).To(HavePrefix("ErrorNet v" + Version))
		})

		It("should announce crashes in verbose mode before reporting", func() {
			var diag bytes.Buffer
			verboseOut = &diag
			viper.Set("quiet", false)
			viper.Set("verbose", true)
			DeferCleanup(func() {
				verboseOut = os.Stderr
				viper.Set("verbose", false)
				crash.SetTerminalResetFunc(nil)
			})

			c := &cobra.Command{Use: "demo"}
			c.SetOut(out)
			Expect(installReporter(c, nil)).To(Succeed())
			Expect(diag.String()).To(ContainSubstring("crash reporter installed"))

			var handled []string
			crash.Install(recordingHook(func(kind string, value any, _ []crash.Frame) error {
				handled = append(handled, diag.String())
				return nil
			}))
			exitCodes := []int{}
			DeferCleanup(crash.SetExitFunc(func(code int) { exitCodes = append(exitCodes, code) }))

			crash.Fail(errors.New("boom"))

			Expect(handled).To(HaveLen(1))
			Expect(handled[0]).To(ContainSubstring("uncaught error in 'demo', handing over to crash reporter"))
			Expect(exitCodes).To(Equal([]int{crash.ExitCodeCrash}))
		})
	})

	Describe("completion", func() {
		It("should generate a script without installing a reporter", func() {
			reporter = nil
			viper.Set("print_title", true)
			previous := crash.Installed()
			rootCmd.SetArgs([]string{"completion", "bash"})
			rootCmd.SetOut(out)
			DeferCleanup(func() {
				rootCmd.SetArgs(nil)
				rootCmd.SetOut(nil)
			})

			Expect(rootCmd.Execute()).To(Succeed())

			Expect(out.String()).To(ContainSubstring("# bash completion for errornet"))
			Expect(out.String()).NotTo(ContainSubstring(crash.Banner))
			Expect(reporter).To(BeNil())
			Expect(crash.Installed()).To(BeIdenticalTo(previous))
		})

		It("should reject unknown shells", func() {
			rootCmd.SetArgs([]string{"completion", "tcsh"})
			rootCmd.SetOut(out)
			DeferCleanup(func() {
				rootCmd.SetArgs(nil)
				rootCmd.SetOut(nil)
			})

			Expect(rootCmd.Execute()).To(MatchError(ContainSubstring("invalid argument")))
		})
	})

	Describe("version", func() {
		It("should print the version", func() {
			versionCmd.SetOut(out)
			DeferCleanup(func() { versionCmd.SetOut(nil) })
			versionCmd.Run(versionCmd, nil)
			Expect(out.String()).To(HavePrefix("ErrorNet v" + Version))
		})
	})
})

// recordingHook erlaubt Funktionen als crash.Hook
type recordingHook func(kind string, value any, stack []crash.Frame) error

func (f recordingHook) HandleUncaught(kind string, value any, stack []crash.Frame) error {
	return f(kind, value, stack)
}
