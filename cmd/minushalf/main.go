/*
 * main.go, part of minushalf.
 *
 * Copyright 2021 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/minushalf"
	"github.com/rmera/minushalf/atm"
	"github.com/rmera/minushalf/corrections"
	"github.com/rmera/minushalf/potplot"
	"github.com/rmera/minushalf/vasp"
)

const version = "1.0.0"

var (
	verbose bool
	quiet   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minushalf",
	Short: "DFT -1/2 band-gap corrections for semiconductors",
	Long: `minushalf automates the DFT -1/2 method: it finds the atoms and
orbitals that dominate the band edges of a calculation, builds
half-electron-occupation pseudopotentials with an atomic all-electron
solver, and searches the cut radius that maximizes the band gap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		switch {
		case quiet:
			config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		case verbose:
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		welcome()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		goodbye()
	},
}

func welcome() {
	if quiet {
		return
	}
	fmt.Printf("---------------- minushalf %s ----------------\n", version)
}

func goodbye() {
	if quiet {
		return
	}
	fmt.Println("------------------- done ---------------------")
}

//factoryFor returns the capability factory of the configured DFT code.
//There is a single implementer for now, but the lookup keeps the commands
//code-agnostic.
func factoryFor(software string) (minushalf.SoftwareFactory, error) {
	if _, err := minushalf.NewSoftware(software); err != nil {
		return nil, err
	}
	return vasp.NewFactory(), nil
}

func bandStructure(factory minushalf.SoftwareFactory, basePath string) (*minushalf.BandStructure, error) {
	eigenvalues, err := factory.GetEigenvalues(basePath)
	if err != nil {
		return nil, err
	}
	fermi, err := factory.GetFermiEnergy(basePath)
	if err != nil {
		return nil, err
	}
	atomsMap, err := factory.GetAtomsMap(basePath)
	if err != nil {
		return nil, err
	}
	numBands, err := factory.GetNumberOfBands(basePath)
	if err != nil {
		return nil, err
	}
	projector, err := factory.GetBandProjection(basePath)
	if err != nil {
		return nil, err
	}
	return minushalf.NewBandStructure(eigenvalues, fermi, atomsMap, numBands, projector), nil
}

func printCharacter(projection map[string]map[string]float64) {
	fmt.Printf("%-6s %-3s %8s\n", "Atom", "l", "%")
	for symbol, orbitals := range projection {
		for letter, percent := range orbitals {
			fmt.Printf("%-6s %-3s %8.2f\n", symbol, letter, percent)
		}
	}
}

func newExecuteCmd() *cobra.Command {
	var configPath, basePath, atomicProgram string
	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Run the whole correction workflow",
		Long: `Runs the correction configured in minushalf.yaml inside the folder of a
finished ground-state calculation: a valence pass, optionally a conduction
pass, and the final report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := minushalf.ReadConfig(configPath)
			if err != nil {
				return err
			}
			factory, err := factoryFor(cfg.Software)
			if err != nil {
				return err
			}
			res, err := corrections.Run(corrections.Params{
				BasePath:     basePath,
				Config:       cfg,
				Factory:      factory,
				DFTRunner:    vasp.NewRunner(cfg.Vasp.NumberOfCores, cfg.Vasp.Path),
				AtomicRunner: atm.NewRunner(atomicProgram),
				Logger:       logger.Sugar(),
			})
			if err != nil {
				return err
			}
			for _, line := range minushalf.ResultsLines(res) {
				fmt.Print(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "minushalf.yaml", "path to the configuration file")
	cmd.Flags().StringVarP(&basePath, "base-path", "b", ".", "folder of the ground-state calculation")
	cmd.Flags().StringVar(&atomicProgram, "atomic-program", "atm", "command of the atomic all-electron solver")
	return cmd
}

func newBandGapCmd() *cobra.Command {
	var software, basePath string
	cmd := &cobra.Command{
		Use:   "band-gap",
		Short: "Report the VBM, the CBM and the gap of a calculation",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := factoryFor(software)
			if err != nil {
				return err
			}
			bs, err := bandStructure(factory, basePath)
			if err != nil {
				return err
			}
			report := bs.BandGap()
			fmt.Printf("VBM: kpoint %d, band %d, %f eV\n", report.VBM.Kpoint, report.VBM.Band, report.VBM.Eigenvalue)
			fmt.Printf("CBM: kpoint %d, band %d, %f eV\n", report.CBM.Kpoint, report.CBM.Band, report.CBM.Eigenvalue)
			fmt.Printf("Gap: %.3f eV\n", report.Gap)
			return nil
		},
	}
	cmd.Flags().StringVarP(&software, "software", "s", "VASP", "DFT code that produced the output files")
	cmd.Flags().StringVarP(&basePath, "base-path", "b", ".", "folder of the calculation")
	return cmd
}

func newCharacterCmd(use, short string, conduction bool) *cobra.Command {
	var software, basePath string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := factoryFor(software)
			if err != nil {
				return err
			}
			bs, err := bandStructure(factory, basePath)
			if err != nil {
				return err
			}
			var projection map[string]map[string]float64
			if conduction {
				projection, err = bs.CBMProjection()
			} else {
				projection, err = bs.VBMProjection()
			}
			if err != nil {
				return err
			}
			printCharacter(projection)
			return nil
		},
	}
	cmd.Flags().StringVarP(&software, "software", "s", "VASP", "DFT code that produced the output files")
	cmd.Flags().StringVarP(&basePath, "base-path", "b", ".", "folder of the calculation")
	return cmd
}

func newCreateInputCmd() *cobra.Command {
	var xc, calculation string
	var maxIterations int
	cmd := &cobra.Command{
		Use:   "create-input [symbol]",
		Short: "Write a minimum INP deck for an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := atm.MinimumSetup(args[0], xc, maxIterations, calculation)
			if err != nil {
				return err
			}
			return in.Write("INP")
		},
	}
	cmd.Flags().StringVar(&xc, "exchange-correlation", "pb", "exchange-correlation code")
	cmd.Flags().StringVar(&calculation, "calculation", "ae", "calculation code")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 100, "iteration cap of the self-consistent cycle")
	return cmd
}

func newRunAtomicCmd() *cobra.Command {
	var program string
	cmd := &cobra.Command{
		Use:   "run-atomic",
		Short: "Run the atomic all-electron solver on the INP deck of the current folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return atm.NewRunner(program).Run(".")
		},
	}
	cmd.Flags().StringVar(&program, "program", "atm", "command of the atomic all-electron solver")
	return cmd
}

func newOccupationCmd() *cobra.Command {
	var program string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "occupation [quantum-numbers] [percentages]",
		Short: "Generate the half-electron occupation potential",
		Long: `Shifts the INP occupations of the current folder by half an electron,
split over the given angular momenta with the given percentages (both
comma-separated), reruns the atomic solver and keeps its output as
VTOTAL_OCC. The original INP and VTOTAL.ae are restored afterwards.

Example: minushalf occupation 1,0 75,25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := splitInts(args[0])
			if err != nil {
				return err
			}
			percentages, err := splitFloats(args[1])
			if err != nil {
				return err
			}
			if len(ls) != len(percentages) {
				return minushalf.NewValidationError("%d quantum numbers for %d percentages", len(ls), len(percentages))
			}
			return occupationPotential(ls, percentages, program, dryRun)
		},
	}
	cmd.Flags().StringVar(&program, "program", "atm", "command of the atomic all-electron solver")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only rewrite INP, do not run the solver")
	return cmd
}

//occupationPotential performs the shift-run-rename-restore sequence that
//turns a ground-state INP/VTOTAL.ae pair into a VTOTAL_OCC file.
func occupationPotential(ls []int, percentages []float64, program string, dryRun bool) error {
	in, err := atm.ReadInput("INP")
	if err != nil {
		return err
	}
	for i, l := range ls {
		fraction := 0.5 * percentages[i] / 100.0
		if err := in.ApplyOccupationShift(fraction, l); err != nil {
			return err
		}
	}
	if dryRun {
		return in.Write("INP")
	}
	originalInp, err := os.ReadFile("INP")
	if err != nil {
		return minushalf.NewMissingArtifactError("INP", "cannot save the input deck: %v", err)
	}
	groundState, err := os.ReadFile("VTOTAL.ae")
	if err != nil {
		return minushalf.NewMissingArtifactError("VTOTAL.ae",
			"no ground-state potential; run the atomic solver first: %v", err)
	}
	if err := in.Write("INP"); err != nil {
		return err
	}
	if err := atm.NewRunner(program).Run("."); err != nil {
		return err
	}
	if err := os.Rename("VTOTAL.ae", "VTOTAL_OCC"); err != nil {
		return minushalf.NewMissingArtifactError("VTOTAL.ae", "the solver produced no potential: %v", err)
	}
	if err := os.WriteFile("VTOTAL.ae", groundState, 0o644); err != nil {
		return minushalf.NewMissingArtifactError("VTOTAL.ae", "cannot restore the ground-state potential: %v", err)
	}
	return os.WriteFile("INP", originalInp, 0o644)
}

func newPlotPotentialCmd() *cobra.Command {
	var vtotalPath, output, title string
	var cut, amplitude float64
	var conduction bool
	cmd := &cobra.Command{
		Use:   "plot-potential",
		Short: "Plot a radial potential, optionally with its trimmed curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, err := atm.ReadVtotal(vtotalPath)
			if err != nil {
				return err
			}
			var corrected []float64
			if cut > 0 {
				corrected, err = atm.CorrectPotential(vt.Radius, vt.Down, cut, amplitude, conduction)
				if err != nil {
					return err
				}
			}
			if title == "" {
				title = filepath.Base(vtotalPath)
			}
			return potplot.Plot(vt.Radius, vt.Down, corrected, title, output)
		},
	}
	cmd.Flags().StringVar(&vtotalPath, "vtotal", "VTOTAL.ae", "radial potential file to plot")
	cmd.Flags().StringVarP(&output, "output", "o", "potential", "name of the output figure, without extension")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().Float64Var(&cut, "cut", 0, "cut radius of the trimmed curve; 0 plots only the raw potential")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "amplitude of the trimming")
	cmd.Flags().BoolVar(&conduction, "conduction", false, "trim toward the conduction asymptote")
	return cmd
}

func splitInts(csv string) ([]int, error) {
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, minushalf.NewValidationError("non-numeric quantum number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, minushalf.NewValidationError("non-numeric percentage %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only, no banners")

	rootCmd.AddCommand(newExecuteCmd())
	rootCmd.AddCommand(newBandGapCmd())
	rootCmd.AddCommand(newCharacterCmd("vbm-character", "Report the orbital character of the valence band maximum", false))
	rootCmd.AddCommand(newCharacterCmd("cbm-character", "Report the orbital character of the conduction band minimum", true))
	rootCmd.AddCommand(newCreateInputCmd())
	rootCmd.AddCommand(newRunAtomicCmd())
	rootCmd.AddCommand(newOccupationCmd())
	rootCmd.AddCommand(newPlotPotentialCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
