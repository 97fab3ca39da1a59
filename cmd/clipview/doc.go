// Command clipview drives the clip paging manager from the command line.
//
// "clipview simulate" builds a synthetic clip collection, pages through it
// with the configured policy and an asynchronous in-memory loader, and prints
// the page table after every step. "clipview config init" writes a sample
// configuration file.
package main
