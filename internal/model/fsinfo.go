// SPDX-License-Identifier: MIT
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Why store the file path?
//
// The file path connects a parsed in-memory Step back to its physical source
// on disk. A deployment pipeline is often split across several .hcl files,
// and when a step fails the operator needs to know not just what is wrong
// but in which file the problematic definition lives.
package model

type FSInfo struct {
	FilePath string
}

func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}
