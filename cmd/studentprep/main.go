// Command studentprep prepares student records for the dropout classifier.
//
//	studentprep data/data_student_raw.csv preprocessing/preprocessing_output/data_student_preprocessed.csv
//	studentprep transform new_students.csv --scaler preprocessing/preprocessing_output/scaler.pkl --save
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
