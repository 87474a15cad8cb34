package entity

import "fmt"

// Algorithm задаёт название алгоритма трекинга.
type Algorithm string

const (
	AlgorithmBoosting   Algorithm = "BOOSTING"
	AlgorithmMIL        Algorithm = "MIL"
	AlgorithmKCF        Algorithm = "KCF"
	AlgorithmTLD        Algorithm = "TLD"
	AlgorithmMedianFlow Algorithm = "MEDIANFLOW"
	AlgorithmGOTURN     Algorithm = "GOTURN"
	AlgorithmMOSSE      Algorithm = "MOSSE"
	AlgorithmCSRT       Algorithm = "CSRT"
)

var algorithms = []Algorithm{
	AlgorithmBoosting,
	AlgorithmMIL,
	AlgorithmKCF,
	AlgorithmTLD,
	AlgorithmMedianFlow,
	AlgorithmGOTURN,
	AlgorithmMOSSE,
	AlgorithmCSRT,
}

// Algorithms возвращает все известные алгоритмы в фиксированном порядке.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// ParseAlgorithm сопоставляет имя с перечислением с учётом регистра.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q (known: %v)", ErrNoSuchAlgorithm, name, algorithms)
}

func (a Algorithm) String() string {
	return string(a)
}
