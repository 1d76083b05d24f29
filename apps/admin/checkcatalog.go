package main

import (
	"fmt"
	"sort"

	"github.com/trezcool/edutrack/core/standard"
)

func (cli *commandLine) checkCatalog(path string) error {
	cat, err := standard.ReadCatalogFile(path)
	if err != nil {
		return err
	}

	counts := cat.SubjectCounts()
	subjects := make([]string, 0, len(counts))
	for subject := range counts {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		fmt.Fprintf(cli.out, "%-24s %3d\n", subject, counts[subject])
	}
	fmt.Fprintf(cli.out, "%-24s %3d\n", "Total", len(cat.Standards))
	return nil
}
