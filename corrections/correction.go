/*
 * correction.go, part of minushalf.
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

package corrections

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rmera/minushalf"
	"github.com/rmera/minushalf/atm"
)

//The input files of the periodic code that every staged calculation needs
//a copy of.
var softwareFiles = []string{"INCAR", "POSCAR", "KPOINTS"}

// ResultsFilename is where Run writes the final report.
const ResultsFilename = "minushalf_results.txt"

// Params collects everything a correction run needs. Logger may be nil, in
// which case the run is silent.
type Params struct {
	//BasePath is the directory of the finished ground-state calculation;
	//all staging folders are created under it.
	BasePath     string
	Config       *minushalf.Config
	Factory      minushalf.SoftwareFactory
	DFTRunner    minushalf.Runner
	AtomicRunner minushalf.Runner
	Logger       *zap.SugaredLogger
}

// Run performs the full correction workflow: a valence pass always, a
// conduction pass on top of it when the correction code asks for one, and
// the final report. It returns the cut radii and the last computed gap.
func Run(p Params) (minushalf.CutResult, error) {
	var res minushalf.CutResult
	if p.Logger == nil {
		p.Logger = zap.NewNop().Sugar()
	}
	bs, err := readBandStructure(p.Factory, p.BasePath)
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}
	atoms, err := atomsInIonOrder(p.Factory, p.BasePath)
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}

	vbmProjection, err := bs.VBMProjection()
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}
	valencePlan, err := minushalf.NewCorrectionPlan(vbmProjection, minushalf.DefaultContributionThreshold)
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}
	p.Logger.Infow("starting valence correction", "targets", valencePlan.Symbols())
	valence, err := New(p, valencePlan, atoms, false, p.Config.Correction.PotfilesFolder)
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}
	res.ValenceCuts, res.Gap, err = valence.Execute()
	if err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}

	if p.Config.CorrectsConduction() {
		cbmProjection, err := bs.CBMProjection()
		if err != nil {
			return res, minushalf.ErrDecorate(err, "Run")
		}
		conductionPlan, err := minushalf.NewCorrectionPlan(cbmProjection, minushalf.DefaultContributionThreshold)
		if err != nil {
			return res, minushalf.ErrDecorate(err, "Run")
		}
		p.Logger.Infow("starting conduction correction", "targets", conductionPlan.Symbols())
		//the conduction pass corrects on top of the valence-corrected files
		conduction, err := New(p, conductionPlan, atoms, true, valence.correctedFolder)
		if err != nil {
			return res, minushalf.ErrDecorate(err, "Run")
		}
		res.ConductionCuts, res.Gap, err = conduction.Execute()
		if err != nil {
			return res, minushalf.ErrDecorate(err, "Run")
		}
	}

	reportPath := filepath.Join(p.BasePath, ResultsFilename)
	if err := minushalf.MakeResults(res, reportPath); err != nil {
		return res, minushalf.ErrDecorate(err, "Run")
	}
	p.Logger.Infow("correction finished", "gap", res.Gap, "report", reportPath)
	return res, nil
}

// Correction is one correction pass (valence or conduction) over the atoms
// and orbitals a CorrectionPlan selected.
type Correction struct {
	basePath        string
	conduction      bool
	correctionType  string
	cfg             *minushalf.Config
	factory         minushalf.SoftwareFactory
	dftRunner       minushalf.Runner
	atomicRunner    minushalf.Runner
	plan            *minushalf.CorrectionPlan
	atoms           []string
	sourceFolder    string
	correctedFolder string
	log             *zap.SugaredLogger
}

//target is one pseudopotential to build and optimize: a whole atom for a
//valence pass, an atom-orbital pair for a conduction one.
type target struct {
	symbol   string
	orbitals []string
	label    string
	dirname  string
}

// New builds a correction pass. It fails up front, with a missing-artifact
// error, if sourceFolder lacks the potential file of any atom of the
// structure.
func New(p Params, plan *minushalf.CorrectionPlan, atoms []string, conduction bool,
	sourceFolder string) (*Correction, error) {
	correctionType := "valence"
	if conduction {
		correctionType = "conduction"
	}
	c := &Correction{
		basePath:        p.BasePath,
		conduction:      conduction,
		correctionType:  correctionType,
		cfg:             p.Config,
		factory:         p.Factory,
		dftRunner:       p.DFTRunner,
		atomicRunner:    p.AtomicRunner,
		plan:            plan,
		atoms:           atoms,
		sourceFolder:    sourceFolder,
		correctedFolder: filepath.Join(p.BasePath, fmt.Sprintf("corrected_%s_potfiles", correctionType)),
		log:             p.Logger,
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	for _, atom := range atoms {
		path := filepath.Join(sourceFolder, c.potFilename(atom))
		if _, err := os.Stat(path); err != nil {
			return nil, minushalf.NewMissingArtifactError(path,
				"potential folder %s lacks the file for atom %s", sourceFolder, atom)
		}
	}
	return c, nil
}

// Execute runs the pass: per-target pseudopotential build, occupation
// shift, cut search and corrected-file write, then a final gap calculation
// with every corrected file joined. Staging folders are destroyed and
// recreated on entry, so a rerun never sees stale files.
func (c *Correction) Execute() (map[string]float64, float64, error) {
	root := filepath.Join(c.basePath, c.correctionType)
	if err := recreateDir(root); err != nil {
		return nil, 0, err
	}
	if err := recreateDir(c.correctedFolder); err != nil {
		return nil, 0, err
	}
	for _, atom := range c.atoms {
		src := filepath.Join(c.sourceFolder, c.potFilename(atom))
		dst := filepath.Join(c.correctedFolder, c.potFilename(atom))
		if err := copyFile(src, dst); err != nil {
			return nil, 0, err
		}
	}
	cuts := make(map[string]float64, c.plan.Len())
	for _, t := range c.targets() {
		c.log.Infow("optimizing cut radius", "pass", c.correctionType, "target", t.label)
		cut, err := c.findBestCorrection(root, t)
		if err != nil {
			return nil, 0, minushalf.ErrDecorate(err, "Execute "+t.label)
		}
		c.log.Infow("cut radius found", "target", t.label, "cut", cut)
		cuts[t.label] = cut
	}
	gap, err := c.resultGap()
	if err != nil {
		return nil, 0, minushalf.ErrDecorate(err, "Execute")
	}
	return cuts, gap, nil
}

//targets lists the corrections of this pass. A valence pass shifts all the
//selected orbitals of an atom in a single pseudopotential; a conduction
//pass builds one pseudopotential per atom-orbital pair.
func (c *Correction) targets() []target {
	var ts []target
	for _, symbol := range c.plan.Symbols() {
		orbitals := c.plan.Orbitals(symbol)
		if !c.conduction {
			ts = append(ts, target{
				symbol:   symbol,
				orbitals: orbitals,
				label:    symbol,
				dirname:  "mkpotcar_" + strings.ToLower(symbol),
			})
			continue
		}
		for _, orb := range orbitals {
			ts = append(ts, target{
				symbol:   symbol,
				orbitals: []string{orb},
				label:    fmt.Sprintf("%s(%s)", symbol, orb),
				dirname:  fmt.Sprintf("mkpotcar_%s_%s", strings.ToLower(symbol), orb),
			})
		}
	}
	return ts
}

func (c *Correction) findBestCorrection(root string, t target) (float64, error) {
	path := filepath.Join(root, t.dirname)
	pseudo := filepath.Join(path, "pseudopotential")
	if err := recreateDir(pseudo); err != nil {
		return 0, err
	}
	if err := c.generatePseudopotential(pseudo, t); err != nil {
		return 0, err
	}
	ap, err := c.atomPotential(pseudo, t.symbol)
	if err != nil {
		return 0, err
	}
	findCut := filepath.Join(path, "find_cut")
	if err := recreateDir(findCut); err != nil {
		return 0, err
	}
	objective := func(cut float64) (float64, error) {
		return c.gapAtCut(findCut, t.symbol, ap, cut)
	}
	cut, gap, err := minushalf.TernarySearch(
		c.cfg.Correction.CutMin, c.cfg.Correction.CutMax, objective,
		minushalf.WithTolerance(c.cfg.Correction.Tolerance))
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "findBestCorrection")
	}
	c.log.Debugw("search converged", "target", t.label, "cut", cut, "gap", gap)
	//persist the optimum for the following targets and the final run
	corrected := ap.CorrectPotential(cut, c.cfg.Correction.Amplitude, c.conduction)
	lines, err := ap.File.CorrectedLines(corrected)
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "findBestCorrection")
	}
	dst := filepath.Join(c.correctedFolder, c.potFilename(t.symbol))
	if err := writeLines(dst, lines); err != nil {
		return 0, err
	}
	return cut, nil
}

//generatePseudopotential runs the atomic solver twice in dir: once for the
//ground state and once with the occupation shift, keeping VTOTAL.ae for the
//former and VTOTAL_OCC for the latter.
func (c *Correction) generatePseudopotential(dir string, t target) error {
	in, err := atm.MinimumSetup(t.symbol, c.cfg.AtomicProgram.ExchangeCorrelationCode,
		c.cfg.AtomicProgram.MaxIterations, c.cfg.AtomicProgram.CalculationCode)
	if err != nil {
		return minushalf.ErrDecorate(err, "generatePseudopotential")
	}
	inpPath := filepath.Join(dir, "INP")
	if err := in.Write(inpPath); err != nil {
		return err
	}
	if err := c.atomicRunner.Run(dir); err != nil {
		return err
	}
	vtotalPath := filepath.Join(dir, "VTOTAL.ae")
	groundState, err := os.ReadFile(vtotalPath)
	if err != nil {
		return minushalf.NewMissingArtifactError(vtotalPath, "the atomic solver produced no potential: %v", err)
	}
	for _, orb := range t.orbitals {
		l, err := minushalf.SecondaryQuantumNumber(orb)
		if err != nil {
			return minushalf.ErrDecorate(err, "generatePseudopotential")
		}
		//half an electron, split by the normalized contribution
		fraction := 0.5 * c.plan.Percentage(t.symbol, orb) / 100.0
		if err := in.ApplyOccupationShift(fraction, l); err != nil {
			return minushalf.ErrDecorate(err, "generatePseudopotential")
		}
	}
	if err := in.Write(inpPath); err != nil {
		return err
	}
	if err := c.atomicRunner.Run(dir); err != nil {
		return err
	}
	if err := os.Rename(vtotalPath, filepath.Join(dir, "VTOTAL_OCC")); err != nil {
		return minushalf.NewMissingArtifactError(vtotalPath,
			"the atomic solver produced no occupation-shifted potential: %v", err)
	}
	if err := os.WriteFile(vtotalPath, groundState, 0o644); err != nil {
		return minushalf.NewMissingArtifactError(vtotalPath, "cannot restore the ground-state potential: %v", err)
	}
	return nil
}

func (c *Correction) atomPotential(dir, symbol string) (*atm.AtomicPotential, error) {
	vtotal, err := atm.ReadVtotal(filepath.Join(dir, "VTOTAL.ae"))
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "atomPotential")
	}
	vtotalOcc, err := atm.ReadVtotal(filepath.Join(dir, "VTOTAL_OCC"))
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "atomPotential")
	}
	potFile, err := c.factory.GetPotential(c.correctedFolder, c.potFilename(symbol))
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "atomPotential")
	}
	ap, err := atm.NewAtomicPotential(vtotal, vtotalOcc, potFile)
	return ap, minushalf.ErrDecorate(err, "atomPotential")
}

//gapAtCut stages and runs one periodic calculation with the potential of
//symbol corrected at the given cut, and extracts its band gap.
func (c *Correction) gapAtCut(findCut, symbol string, ap *atm.AtomicPotential, cut float64) (float64, error) {
	cutDir := filepath.Join(findCut, fmt.Sprintf("cut_%.2f", cut))
	if err := recreateDir(cutDir); err != nil {
		return 0, err
	}
	if err := c.copySoftwareFiles(cutDir); err != nil {
		return 0, err
	}
	lines, err := ap.CorrectedLines(cut, c.cfg.Correction.Amplitude, c.conduction)
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "gapAtCut")
	}
	if err := c.joinPotfiles(cutDir, symbol, lines); err != nil {
		return 0, err
	}
	if err := c.dftRunner.Run(cutDir); err != nil {
		return 0, err
	}
	bs, err := readBandStructure(c.factory, cutDir)
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "gapAtCut")
	}
	return bs.BandGap().Gap, nil
}

//resultGap runs the periodic code once with every optimized potential file
//joined, and returns the gap of that calculation.
func (c *Correction) resultGap() (float64, error) {
	dir := filepath.Join(c.basePath, fmt.Sprintf("calculate_%s_gap", c.correctionType))
	if err := recreateDir(dir); err != nil {
		return 0, err
	}
	if err := c.copySoftwareFiles(dir); err != nil {
		return 0, err
	}
	if err := c.joinPotfiles(dir, "", nil); err != nil {
		return 0, err
	}
	if err := c.dftRunner.Run(dir); err != nil {
		return 0, err
	}
	bs, err := readBandStructure(c.factory, dir)
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "resultGap")
	}
	return bs.BandGap().Gap, nil
}

//joinPotfiles concatenates the per-atom potential files into dir's joined
//potential file, in ion order. When override is non-empty, the atom with
//that symbol gets overrideLines instead of its file in the corrected
//folder.
func (c *Correction) joinPotfiles(dir, override string, overrideLines []string) error {
	joined, err := os.Create(filepath.Join(dir, c.factory.PotentialFilename()))
	if err != nil {
		return minushalf.NewMissingArtifactError(dir, "cannot create the joined potential file: %v", err)
	}
	defer joined.Close()
	for _, atom := range c.atoms {
		if atom == override {
			for _, line := range overrideLines {
				if _, err := joined.WriteString(line); err != nil {
					return minushalf.NewMissingArtifactError(dir, "cannot write the joined potential file: %v", err)
				}
			}
			continue
		}
		content, err := os.ReadFile(filepath.Join(c.correctedFolder, c.potFilename(atom)))
		if err != nil {
			return minushalf.NewMissingArtifactError(dir, "cannot join the potential of %s: %v", atom, err)
		}
		if _, err := joined.Write(content); err != nil {
			return minushalf.NewMissingArtifactError(dir, "cannot write the joined potential file: %v", err)
		}
	}
	return nil
}

func (c *Correction) copySoftwareFiles(dst string) error {
	for _, name := range softwareFiles {
		if err := copyFile(filepath.Join(c.basePath, name), filepath.Join(dst, name)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Correction) potFilename(symbol string) string {
	return fmt.Sprintf("%s.%s", strings.ToUpper(c.factory.PotentialFilename()), strings.ToLower(symbol))
}

func readBandStructure(factory minushalf.SoftwareFactory, basePath string) (*minushalf.BandStructure, error) {
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

//atomsInIonOrder returns the distinct chemical symbols of the structure,
//ordered by their first ion index.
func atomsInIonOrder(factory minushalf.SoftwareFactory, basePath string) ([]string, error) {
	atomsMap, err := factory.GetAtomsMap(basePath)
	if err != nil {
		return nil, err
	}
	indexes := make([]int, 0, len(atomsMap))
	for key := range atomsMap {
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, minushalf.NewFormatError("", "non-numeric ion index %q in the atoms map", key)
		}
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	var atoms []string
	seen := make(map[string]bool)
	for _, i := range indexes {
		symbol := atomsMap[strconv.Itoa(i)]
		if !seen[symbol] {
			seen[symbol] = true
			atoms = append(atoms, symbol)
		}
	}
	return atoms, nil
}

func recreateDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot clean staging folder: %v", err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot create staging folder: %v", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return minushalf.NewMissingArtifactError(src, "cannot read file to copy: %v", err)
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return minushalf.NewMissingArtifactError(dst, "cannot write copy: %v", err)
	}
	return nil
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot create file: %v", err)
	}
	defer file.Close()
	for _, line := range lines {
		if _, err := file.WriteString(line); err != nil {
			return minushalf.NewMissingArtifactError(path, "cannot write file: %v", err)
		}
	}
	return nil
}
